package payment

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// EMV tag numbers used by KHQR dynamic merchant codes.
const (
	tagPayloadFormat   = "00"
	tagInitiationPoint = "01"
	tagMerchantAccount = "29"
	tagMerchantCode    = "52"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"
	tagMerchantName    = "59"
	tagMerchantCity    = "60"
	tagAdditionalData  = "62"
	tagTimestamp       = "99"
	tagCRC             = "63"

	subAccountID  = "00"
	subBillNumber = "01"
	subMobile     = "02"
	subMillis     = "00"
)

const (
	currencyKHRCode = "116"
	currencyUSDCode = "840"

	maxMerchantNameLen = 25
	maxMerchantCityLen = 15
)

// KHQRParams holds everything needed to build one dynamic KHQR code.
type KHQRParams struct {
	BankAccount  string
	MerchantName string
	MerchantCity string
	Mobile       string
	BillNumber   string
	Amount       float64
	Currency     string // "KHR" or "USD"
}

// BuildKHQRPayload assembles the EMV TLV string for a dynamic KHQR code,
// CRC included.
func BuildKHQRPayload(p KHQRParams) (string, error) {
	if p.BankAccount == "" {
		return "", ErrMerchantNotConfigured
	}
	amount, err := formatAmount(p.Amount, p.Currency)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(tlv(tagPayloadFormat, "01"))
	sb.WriteString(tlv(tagInitiationPoint, "12"))
	sb.WriteString(tlv(tagMerchantAccount, tlv(subAccountID, p.BankAccount)))
	sb.WriteString(tlv(tagMerchantCode, "5999"))
	sb.WriteString(tlv(tagCurrency, currencyCode(p.Currency)))
	sb.WriteString(tlv(tagAmount, amount))
	sb.WriteString(tlv(tagCountry, "KH"))
	sb.WriteString(tlv(tagMerchantName, clip(p.MerchantName, maxMerchantNameLen)))
	sb.WriteString(tlv(tagMerchantCity, clip(p.MerchantCity, maxMerchantCityLen)))

	var extra strings.Builder
	if p.BillNumber != "" {
		extra.WriteString(tlv(subBillNumber, p.BillNumber))
	}
	if p.Mobile != "" {
		extra.WriteString(tlv(subMobile, p.Mobile))
	}
	if extra.Len() > 0 {
		sb.WriteString(tlv(tagAdditionalData, extra.String()))
	}

	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sb.WriteString(tlv(tagTimestamp, tlv(subMillis, millis)))

	// The CRC covers everything up to and including its own tag+length.
	sb.WriteString(tagCRC + "04")
	payload := sb.String()
	return payload + fmt.Sprintf("%04X", Checksum(payload)), nil
}

// PayloadMD5 is the correlation key Bakong uses for transaction lookup.
func PayloadMD5(payload string) string {
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// RenderQRBase64 renders the payload as a PNG and returns it as a data
// URI suitable for an <img> src.
func RenderQRBase64(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 512)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Checksum computes CRC-16/CCITT-FALSE over the payload bytes.
func Checksum(payload string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(payload); i++ {
		crc ^= uint16(payload[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// formatAmount follows KHQR rules: riel has no minor unit, dollars carry
// two decimals.
func formatAmount(amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	switch currency {
	case "KHR":
		return strconv.FormatFloat(amount, 'f', 0, 64), nil
	case "USD":
		return strconv.FormatFloat(amount, 'f', 2, 64), nil
	default:
		return "", ErrInvalidCurrency
	}
}

func currencyCode(currency string) string {
	if currency == "USD" {
		return currencyUSDCode
	}
	return currencyKHRCode
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
