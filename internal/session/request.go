package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Operation is a user-triggered AI request kind
type Operation int

const (
	OpVocabulary Operation = iota
	OpPodcast
	OpPart1
	OpPart2
	OpEvaluation
	OpPractice
	OpSpeakingCheck
	OpSuggestions
	OpExamples
	OpSpeech
)

func (o Operation) String() string {
	switch o {
	case OpVocabulary:
		return "vocabulary"
	case OpPodcast:
		return "podcast"
	case OpPart1:
		return "part1"
	case OpPart2:
		return "part2"
	case OpEvaluation:
		return "evaluation"
	case OpPractice:
		return "practice"
	case OpSpeakingCheck:
		return "speaking-check"
	case OpSuggestions:
		return "suggestions"
	case OpExamples:
		return "examples"
	case OpSpeech:
		return "speech"
	default:
		return "unknown"
	}
}

// dependsOnActiveSet reports whether results of o are derived from the
// active vocabulary set
func (o Operation) dependsOnActiveSet() bool {
	switch o {
	case OpPodcast, OpPart1, OpPart2, OpEvaluation, OpPractice, OpSpeakingCheck, OpExamples:
		return true
	default:
		return false
	}
}

// RequestStatus is the lifecycle state of an operation's latest request
type RequestStatus int

const (
	StatusIdle RequestStatus = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s RequestStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPending:
		return "Pending"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Request tracks the latest request of one operation. BaseSetID is the
// active vocabulary set when the request started.
type Request struct {
	ID        uuid.UUID
	Status    RequestStatus
	BaseSetID int64
	Err       string
}

// StalenessPolicy decides what happens to a response that completes after
// its context changed
type StalenessPolicy int

const (
	// ApplyAlways applies every completed response
	ApplyAlways StalenessPolicy = iota
	// DropStale discards a response whose request was superseded or whose
	// base set is no longer active
	DropStale
)

func (p StalenessPolicy) String() string {
	switch p {
	case ApplyAlways:
		return "apply"
	case DropStale:
		return "drop"
	default:
		return "unknown"
	}
}

// ParseStalenessPolicy parses "apply" or "drop"
func ParseStalenessPolicy(s string) (StalenessPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apply", "":
		return ApplyAlways, nil
	case "drop":
		return DropStale, nil
	default:
		return ApplyAlways, fmt.Errorf("unknown staleness policy: %q (use apply or drop)", s)
	}
}
