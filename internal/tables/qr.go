package tables

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
)

const (
	qrSize   = 1000
	qrMargin = 1 // modules of quiet zone
)

// Payload is what a table's QR code points to.
func Payload(websiteURL, token string) string {
	return fmt.Sprintf("%s?token=%s", websiteURL, token)
}

// FileName is the download name of a table's QR code.
func FileName(table int) string {
	return fmt.Sprintf("QRCode_Table_%d.png", table)
}

// PNG renders content as a size×size PNG with a quiet zone of margin modules.
func PNG(content string, size, margin int) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr kodu oluşturulamadı: %w", err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap) + 2*margin
	scale := size / modules
	if scale < 1 {
		return nil, fmt.Errorf("qr kodu %dpx içine sığmıyor (%d modül)", size, modules)
	}
	offset := (size-scale*modules)/2 + margin*scale

	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(offset+x*scale+dx, offset+y*scale+dy, color.Gray{Y: 0})
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png yazılamadı: %w", err)
	}
	return buf.Bytes(), nil
}
