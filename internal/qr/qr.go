package qr

import (
	"github.com/skip2/go-qrcode"
)

// Generator renders QR code PNGs for public menu URLs
type Generator interface {
	Render(url string) ([]byte, error)
}

type DefaultGenerator struct {
	Size int // pixels per side, 256 when zero
}

func (g DefaultGenerator) Render(url string) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(url, qrcode.Medium, size)
}
