package fingerprint

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPhoto is returned when a photo string carries no payload.
var ErrEmptyPhoto = errors.New("empty photo")

// DecodePhoto decodes a base64 photo, optionally prefixed with a data URI
// header such as "data:image/jpeg;base64,". Only the text after the last comma
// is decoded.
func DecodePhoto(encoded string) ([]byte, error) {
	payload := encoded
	if i := strings.LastIndex(encoded, ","); i >= 0 {
		payload = encoded[i+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrEmptyPhoto
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients strip the padding.
		if raw, rawErr := base64.RawStdEncoding.DecodeString(payload); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("decoding base64 photo: %w", err)
	}
	return data, nil
}
