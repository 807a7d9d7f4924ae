package booking

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxReceiptSize is the upload cap for payment evidence.
const MaxReceiptSize = 5 << 20 // 5MB

var allowedReceiptTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
}

// ValidateReceipt checks the uploaded receipt against the type and size
// constraints. It runs before any storage or database effect, and each
// violated constraint yields its own error.
func ValidateReceipt(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrReceiptRequired
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))

	if !allowedReceiptTypes[ct] {
		return ErrReceiptType
	}
	if fh.Size > MaxReceiptSize {
		return ErrReceiptTooLarge
	}
	return nil
}
