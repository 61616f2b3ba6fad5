package processor

import "errors"

var (
	// ErrSetNotFound is returned for an unknown vocabulary or suggestion set id
	ErrSetNotFound = errors.New("set not found")
	// ErrNoActiveSet is returned by operations that need an active vocabulary set
	ErrNoActiveSet = errors.New("no active vocabulary set")
	// ErrBusy is returned when the same operation is already running
	ErrBusy = errors.New("operation already in progress")
)

// Messages shown to the learner
const (
	msgVocabularyFailed  = "Không thể tạo danh sách từ vựng. Vui lòng kiểm tra lại và thử lại sau."
	msgContentFailed     = "Không thể tạo nội dung. Vui lòng thử lại."
	msgPodcastFailed     = "Không thể tạo podcast. Vui lòng thử lại."
	msgPracticeFailed    = "Không thể tạo câu hỏi luyện tập. Vui lòng thử lại."
	msgCheckFailed       = "Không thể nhận xét. Vui lòng thử lại."
	msgEvaluationFailed  = "Lỗi khi nhận xét."
	msgSuggestionsFailed = "Không thể tạo gợi ý. Vui lòng thử lại sau."
	msgExamplesFailed    = "Không thể tạo câu ví dụ cho từ %q. Vui lòng thử lại."
	msgSpeechFailed      = "Lỗi khi phát âm thanh AI, chuyển sang giọng đọc máy."
	msgNoActiveSet       = "Vui lòng tạo danh sách từ vựng trước."
	msgNoTopic           = "Chưa có chủ đề nào được chọn."
	msgEmptyAnswer       = "Vui lòng nhập câu trả lời của bạn."
	msgKeyTooShort       = "API Key có vẻ không hợp lệ (quá ngắn)."
	msgMissingKey        = "Chưa có API key. Vui lòng đăng nhập hoặc đặt biến môi trường GEMINI_API_KEY."
)

// UserError carries the message shown to the learner alongside the cause
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}
