package datasource

import (
	"fmt"
	"net/url"

	"golang.org/x/text/encoding/unicode"
)

// decodeCredential percent-decodes a password ('+' decodes to a space) and
// interprets the bytes as UTF-8. Ill-formed UTF-8 is replaced with U+FFFD.
func decodeCredential(s string) (string, error) {
	return decodeUTF8(s, url.QueryUnescape)
}

// decodeUsername percent-decodes a username. '+' is kept literally.
func decodeUsername(s string) (string, error) {
	return decodeUTF8(s, url.PathUnescape)
}

func decodeUTF8(s string, unescape func(string) (string, error)) (string, error) {
	unescaped, err := unescape(s)
	if err != nil {
		return "", fmt.Errorf("unescape: %w", err)
	}

	decoded, err := unicode.UTF8.NewDecoder().String(unescaped)
	if err != nil {
		return "", fmt.Errorf("decode utf-8: %w", err)
	}

	return decoded, nil
}
