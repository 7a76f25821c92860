package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const (
	MaxProofBytes = 10 << 20
	MaxDimension  = 2000

	jpegQuality = 85
)

var ErrProofTooLarge = errors.New("imaging: proof exceeds size limit")

// EncodeProof decodes a payment screenshot and produces its base64 form.
// Screenshots larger than MaxDimension are scaled down and re-encoded as JPEG.
func EncodeProof(r io.Reader) (*domain.Proof, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxProofBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imaging: read proof: %w", err)
	}
	if len(raw) > MaxProofBytes {
		return nil, ErrProofTooLarge
	}
	if len(raw) == 0 {
		return nil, errors.New("imaging: empty proof")
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode proof: %w", err)
	}

	if scaled, ok := downscale(img, MaxDimension); ok {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("imaging: re-encode proof: %w", err)
		}
		img, format, raw = scaled, "jpeg", buf.Bytes()
	}

	b := img.Bounds()
	return &domain.Proof{
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Encoded: base64.StdEncoding.EncodeToString(raw),
		Image:   img,
	}, nil
}

func downscale(img image.Image, maxSide int) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img, false
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, true
}
