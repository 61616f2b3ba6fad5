package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
)

const (
	wavHeaderSize = 44
	bitsPerSample = 16
	numChannels   = 1
	blockAlign    = numChannels * bitsPerSample / 8
)

var sampleRatePattern = regexp.MustCompile(`rate=(\d+)`)

// ParseSampleRate extracts the sample rate from a MIME descriptor such as
// "audio/L16;codec=pcm;rate=24000"
func ParseSampleRate(mimeType string) (int, error) {
	m := sampleRatePattern.FindStringSubmatch(mimeType)
	if m == nil {
		return 0, fmt.Errorf("sample rate not found in MIME type %q", mimeType)
	}

	rate, err := strconv.Atoi(m[1])
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("invalid sample rate in MIME type %q", mimeType)
	}
	return rate, nil
}

// DecodePCM decodes base64 little-endian 16-bit PCM samples
func DecodePCM(audioData string) ([]int16, error) {
	raw, err := base64.StdEncoding.DecodeString(audioData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio data: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("PCM data has odd length %d", len(raw))
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return samples, nil
}

// EncodeWAV wraps mono 16-bit samples in a canonical 44 byte WAV header.
// The result is exactly 44 + 2*len(pcm) bytes long.
func EncodeWAV(pcm []int16, sampleRate int) []byte {
	dataSize := len(pcm) * blockAlign
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(&buf, binary.LittleEndian, pcm)

	return buf.Bytes()
}

// WAVFromSpeech converts AI speech output into a playable WAV file body
func WAVFromSpeech(audioData, mimeType string) ([]byte, error) {
	rate, err := ParseSampleRate(mimeType)
	if err != nil {
		return nil, err
	}

	pcm, err := DecodePCM(audioData)
	if err != nil {
		return nil, err
	}

	return EncodeWAV(pcm, rate), nil
}
