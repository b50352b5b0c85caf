package registration

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// decodeDataURL unpacks a base64 data URL into its payload and MIME type.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return nil, "", fmt.Errorf("invalid base64 data URL format")
	}

	contentType := matches[1]
	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}

	return data, contentType, nil
}
