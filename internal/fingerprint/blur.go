package fingerprint

import (
	"image"
	"math"
)

// Fixed kernels used for small sizes when sigma is derived automatically.
var smallGaussianKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// gaussianKernel returns a normalized 1D Gaussian kernel of the given odd size.
// Sigma is derived from the size as 0.3*((size-1)*0.5-1)+0.8.
func gaussianKernel(size int) []float64 {
	if k, ok := smallGaussianKernels[size]; ok {
		return k
	}

	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	center := float64(size-1) / 2
	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur applies a separable size x size Gaussian blur.
// Borders are reflected without repeating the edge pixel (dcb|abcd|cba).
func gaussianBlur(src *image.Gray, size int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if size <= 1 || w == 0 || h == 0 {
		return src
	}

	kernel := gaussianKernel(size)
	radius := len(kernel) / 2

	tmp := make([]float64, w*h)
	for y := range h {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := range w {
			var sum float64
			for k, weight := range kernel {
				sum += weight * float64(row[reflect101(x+k-radius, w)])
			}
			tmp[y*w+x] = sum
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			var sum float64
			for k, weight := range kernel {
				sum += weight * tmp[reflect101(y+k-radius, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}
	return dst
}

// reflect101 maps an out-of-range index back into [0, n).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

func clampUint8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
