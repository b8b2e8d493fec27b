package utils

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// ReservationQR encodes a reservation code as a PNG the guest shows on
// arrival.
func ReservationQR(code string, size int) ([]byte, error) {
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
