// Package qr builds and parses the pass URLs embedded in guest QR codes and renders them as images.
package qr

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	PassPath   = "/pass/"
	LegacyPath = "/checkin/"

	DefaultSize = 500
)

// The legacy /checkin/ form is still accepted when decoding.
var tokenInURL = regexp.MustCompile(`/(?:pass|checkin)/([A-Za-z0-9-]+)`)

// Encode returns the canonical pass URL for token.
func Encode(base, token string) string {
	return strings.TrimRight(base, "/") + PassPath + token
}

// LegacyURL returns the older /checkin/ form of the pass URL.
func LegacyURL(base, token string) string {
	return strings.TrimRight(base, "/") + LegacyPath + token
}

// Decode extracts the token from a scanned pass URL.
func Decode(scanned string) (string, bool) {
	m := tokenInURL.FindStringSubmatch(scanned)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TokenFromScan decodes a pass URL, falling back to the raw text when the payload is not a URL.
func TokenFromScan(scanned string) string {
	if tok, ok := Decode(scanned); ok {
		return tok
	}
	return strings.TrimSpace(scanned)
}

// PNG renders content as a QR code using high error correction.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// DataURL renders content as a base64 PNG data URL, suitable for inline email images.
func DataURL(content string, size int) (string, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
