// Package fingerprint turns encoded photos into canonical grayscale images and
// scores how closely two of them align.
package fingerprint

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/kozaktomas/face-attendance/internal/constants"
	_ "golang.org/x/image/webp"
)

// ErrUnusableImage is returned when input bytes cannot be decoded as an image.
var ErrUnusableImage = errors.New("unusable image")

// Options controls normalization.
type Options struct {
	Size       int // canonical width and height
	KernelSize int // Gaussian kernel size, odd; 1 or less disables blurring
	MaxPixels  int // decoded width*height limit; 0 means constants.DefaultMaxPixels
}

// DefaultOptions returns the 200x200, 5x5 blur normalization.
func DefaultOptions() Options {
	return Options{
		Size:       constants.DefaultImageSize,
		KernelSize: constants.DefaultBlurKernel,
		MaxPixels:  constants.DefaultMaxPixels,
	}
}

// Normalize decodes an encoded photo and returns its canonical form.
// Undecodable input yields an error wrapping ErrUnusableImage.
func Normalize(data []byte, opts Options) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnusableImage)
	}

	if err := checkDimensions(data, opts.MaxPixels); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", ErrUnusableImage)
	}

	return NormalizeImage(img, opts), nil
}

// checkDimensions reads only the image header, so a few bytes claiming huge
// dimensions are rejected before any pixel buffer is allocated.
func checkDimensions(data []byte, maxPixels int) error {
	if maxPixels <= 0 {
		maxPixels = constants.DefaultMaxPixels
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnusableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: zero-sized image", ErrUnusableImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnusableImage, cfg.Width, cfg.Height, maxPixels)
	}
	return nil
}

// NormalizeImage converts img to grayscale, blurs it and resizes it to
// opts.Size x opts.Size, discarding the aspect ratio.
func NormalizeImage(img image.Image, opts Options) *image.Gray {
	gray := toGray(img)
	blurred := gaussianBlur(gray, opts.KernelSize)
	return resizeGray(blurred, opts.Size, opts.Size)
}

// toGray converts an image to single channel BT.601 luma.
func toGray(img image.Image) *image.Gray {
	return grayFromNRGBA(imaging.Grayscale(img))
}

// resizeGray scales a grayscale image with linear interpolation.
func resizeGray(img *image.Gray, width, height int) *image.Gray {
	return grayFromNRGBA(imaging.Resize(img, width, height, imaging.Linear))
}

// grayFromNRGBA copies the red channel of an image whose channels are equal.
func grayFromNRGBA(src *image.NRGBA) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		row := src.Pix[y*src.Stride:]
		for x := range w {
			dst.Pix[y*dst.Stride+x] = row[x*4]
		}
	}
	return dst
}
