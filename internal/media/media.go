// Package media rescales uploaded images to the fixed sizes the public site
// displays them at.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Target is an output size. Quality is in (0,1] and only applies to JPEG.
type Target struct {
	Width   int
	Height  int
	Quality float64
}

var (
	Food   = Target{Width: 360, Height: 280, Quality: 0.8}
	Header = Target{Width: 1366, Height: 768, Quality: 0.7}
	About  = Target{Width: 400, Height: 400, Quality: 0.7}
	Chef   = Target{Width: 413, Height: 520, Quality: 0.8}
)

var ErrDecode = errors.New("görsel çözümlenemedi")

// MaxPixels caps the declared canvas of an upload before it is decoded.
const MaxPixels = 40_000_000

// Result is an encoded image ready for upload.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Resize draws r onto a Width×Height canvas. The aspect ratio is not kept.
// JPEG input stays JPEG at the target quality; everything else becomes PNG.
func Resize(r io.Reader, t Target) (*Result, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("geçersiz hedef boyut %dx%d", t.Width, t.Height)
	}

	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d çok büyük", ErrDecode, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	if format == "jpeg" {
		// JPEG has no alpha; start from white like a blank canvas export.
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(t.Quality)}); err != nil {
			return nil, fmt.Errorf("jpeg kodlanamadı: %w", err)
		}
		return &Result{Data: buf.Bytes(), ContentType: "image/jpeg", Ext: ".jpg"}, nil
	}

	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("png kodlanamadı: %w", err)
	}
	return &Result{Data: buf.Bytes(), ContentType: "image/png", Ext: ".png"}, nil
}

func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		return jpeg.DefaultQuality
	}
	return int(q*100 + 0.5)
}
