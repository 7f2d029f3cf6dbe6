package fingerprint

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrSizeMismatch is returned when two images of different dimensions are compared.
var ErrSizeMismatch = errors.New("image dimensions differ")

// Correlation computes the zero-offset normalized cross-correlation coefficient
// of two equally sized grayscale images. Both images are mean-centred first, so
// the score ignores uniform brightness and contrast changes.
// Returns a value between -1 and 1; 0 if either image is flat.
func Correlation(a, b *image.Gray) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	w, h := ab.Dx(), ab.Dy()
	n := w * h
	if n == 0 {
		return 0, nil
	}

	var sumA, sumB float64
	for y := range h {
		rowA := a.Pix[a.PixOffset(ab.Min.X, ab.Min.Y+y):]
		rowB := b.Pix[b.PixOffset(bb.Min.X, bb.Min.Y+y):]
		for x := range w {
			sumA += float64(rowA[x])
			sumB += float64(rowB[x])
		}
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cross, varA, varB float64
	for y := range h {
		rowA := a.Pix[a.PixOffset(ab.Min.X, ab.Min.Y+y):]
		rowB := b.Pix[b.PixOffset(bb.Min.X, bb.Min.Y+y):]
		for x := range w {
			da := float64(rowA[x]) - meanA
			db := float64(rowB[x]) - meanB
			cross += da * db
			varA += da * da
			varB += db * db
		}
	}

	if varA == 0 || varB == 0 {
		return 0, nil
	}

	score := cross / math.Sqrt(varA*varB)
	return max(-1, min(1, score)), nil
}

// Matches reports whether a correlation score is strictly above threshold.
func Matches(score, threshold float64) bool {
	return score > threshold
}
