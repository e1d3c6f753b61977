// Package media normalizes uploaded images and stores them in object storage.
package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

const (
	MaxUploadBytes = 5 << 20
	MaxDimension   = 512
	// MaxPixels bounds the decoded size; a small file can declare huge dimensions.
	MaxPixels      = 24_000_000
	webpQuality    = 82
)

var acceptedFormats = map[string]bool{"jpeg": true, "png": true, "webp": true}

// Process decodes a JPEG, PNG or WebP image, fits it inside
// MaxDimension×MaxDimension and re-encodes it as WebP.
func Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadBytes {
		return nil, httperr.ErrBusiness("image_too_large")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || !acceptedFormats[format] {
		return nil, httperr.ErrBusiness("invalid_image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil || !acceptedFormats[format] {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, fit(src, MaxDimension), &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func fit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
