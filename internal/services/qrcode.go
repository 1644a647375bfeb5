package services

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/lingoqr/lingoqr/internal/metrics"
)

// qrImageSize is the pixel width/height of generated QR images.
const qrImageSize = 320

// EncodeQRCode renders the payload as a PNG QR code using the highest
// error-correction level, so the symbol survives print and scan
// degradation. Output is deterministic for a given payload.
func EncodeQRCode(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty QR payload")
	}

	png, err := qrcode.Encode(payload, qrcode.Highest, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	metrics.QRCodesGeneratedTotal.Inc()
	return png, nil
}
