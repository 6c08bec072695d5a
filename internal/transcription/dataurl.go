package transcription

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidAudio reports an audio payload that is not a base64 data URL.
var ErrInvalidAudio = errors.New("invalid audio payload")

// DecodeDataURL extracts the bytes of a base64 data URL such as
// "data:audio/webm;base64,GkXf...". A bare base64 string is also accepted.
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidAudio
	}

	payload := s
	if strings.HasPrefix(s, "data:") {
		header, data, ok := strings.Cut(s, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, ErrInvalidAudio
		}
		payload = data
	}

	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Browsers occasionally drop padding.
		audio, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, ErrInvalidAudio
		}
	}
	if len(audio) == 0 {
		return nil, ErrInvalidAudio
	}
	return audio, nil
}
