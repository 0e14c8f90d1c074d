package services

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders a table's QR code image
type QRGenerator interface {
	Generate(tableToken string) ([]byte, error)
}

// DefaultQRGenerator encodes the guest login URL for a table token as a
// 256px PNG
type DefaultQRGenerator struct {
	BaseURL string
}

// Generate implements QRGenerator
func (g DefaultQRGenerator) Generate(tableToken string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/guest/login?token=%s", g.BaseURL, url.QueryEscape(tableToken))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
