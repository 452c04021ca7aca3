package report

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrBadDigest = errors.New("report: digest is not a hex sha256")

const defaultQRSize = 128

// DigestToQR renders a PNG QR code whose content is "sha256:<digest>" so a
// scanned report can be matched against the output file.
func DigestToQR(digest string, size int) ([]byte, error) {
	content, err := digestURI(digest)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultQRSize
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return q.PNG(size)
}

func digestURI(digest string) (string, error) {
	digest = strings.ToLower(strings.TrimSpace(digest))
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) != sha256.Size {
		return "", fmt.Errorf("%w: %q", ErrBadDigest, digest)
	}
	return "sha256:" + digest, nil
}
