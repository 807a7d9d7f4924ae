package booking

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(name, contentType string, size int64) *multipart.FileHeader {
	fh := &multipart.FileHeader{Filename: name, Size: size, Header: textproto.MIMEHeader{}}
	if contentType != "" {
		fh.Header.Set("Content-Type", contentType)
	}
	return fh
}

func TestValidateReceiptAcceptedTypes(t *testing.T) {
	for _, ct := range []string{
		"image/jpeg", "image/jpg", "image/png", "image/gif", "application/pdf",
	} {
		assert.NoError(t, ValidateReceipt(header("receipt", ct, 1<<20)), ct)
	}
}

func TestValidateReceiptRejectsOtherTypes(t *testing.T) {
	assert.ErrorIs(t, ValidateReceipt(header("notes.txt", "text/plain", 100)), ErrReceiptType)
	assert.ErrorIs(t, ValidateReceipt(header("clip.mp4", "video/mp4", 100)), ErrReceiptType)
}

func TestValidateReceiptSizeCap(t *testing.T) {
	assert.NoError(t, ValidateReceipt(header("r.png", "image/png", MaxReceiptSize)))
	assert.ErrorIs(t, ValidateReceipt(header("r.png", "image/png", MaxReceiptSize+1)), ErrReceiptTooLarge)
	assert.ErrorIs(t, ValidateReceipt(header("r.png", "image/png", 6<<20)), ErrReceiptTooLarge)
}

func TestValidateReceiptTypeCheckedBeforeSize(t *testing.T) {
	// An oversized file of a forbidden type reports the type error.
	assert.ErrorIs(t, ValidateReceipt(header("big.txt", "text/plain", 6<<20)), ErrReceiptType)
}

func TestValidateReceiptFallsBackToExtension(t *testing.T) {
	assert.NoError(t, ValidateReceipt(header("receipt.pdf", "", 100)))
	assert.ErrorIs(t, ValidateReceipt(header("receipt.docx", "", 100)), ErrReceiptType)
}

func TestValidateReceiptStripsParams(t *testing.T) {
	assert.NoError(t, ValidateReceipt(header("r.png", "image/png; charset=binary", 100)))
}

func TestValidateReceiptNil(t *testing.T) {
	assert.ErrorIs(t, ValidateReceipt(nil), ErrReceiptRequired)
}
