// Package jpegimage is the narrow image primitive adapter imgFS's storage
// engine calls into: decode dimensions, and produce a scaled-down JPEG.
// No other imaging call is made from pkg/imgfs (see SPEC_FULL.md §4.C).
package jpegimage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// ErrDecode wraps any failure to parse a byte slice as a JPEG.
type ErrDecode struct{ Err error }

func (e *ErrDecode) Error() string { return fmt.Sprintf("jpegimage: decode: %v", e.Err) }
func (e *ErrDecode) Unwrap() error { return e.Err }

// DecodeDimensions returns the pixel width/height of a JPEG-encoded image
// without fully decoding pixel data into a resampling-ready buffer.
func DecodeDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, &ErrDecode{Err: err}
	}

	return cfg.Width, cfg.Height, nil
}

// Thumbnail decodes data as a JPEG and re-encodes a scaled copy whose
// longer side is bounded by targetWidth, preserving aspect ratio (the
// "fit both" rule from SPEC_FULL.md §4.B). If the image is already no
// larger than targetWidth on its longer side, it is returned unscaled
// (re-encoded, so the result is still a standalone JPEG blob).
func Thumbnail(data []byte, targetWidth int) ([]byte, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("jpegimage: invalid target width %d", targetWidth)
	}

	src, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ErrDecode{Err: err}
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	dstW, dstH := srcW, srcH
	if srcW > targetWidth || srcH > targetWidth {
		dstW, dstH = fitBoth(srcW, srcH, targetWidth)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("jpegimage: encode: %w", err)
	}

	return out.Bytes(), nil
}

// fitBoth scales (srcW, srcH) so that the longer of the two dimensions
// equals target, preserving aspect ratio, and never produces a zero
// dimension.
func fitBoth(srcW, srcH, target int) (dstW, dstH int) {
	if srcW <= 0 || srcH <= 0 {
		return target, target
	}

	if srcW >= srcH {
		dstW = target
		dstH = srcH * target / srcW
	} else {
		dstH = target
		dstW = srcW * target / srcH
	}

	if dstW < 1 {
		dstW = 1
	}

	if dstH < 1 {
		dstH = 1
	}

	return dstW, dstH
}
