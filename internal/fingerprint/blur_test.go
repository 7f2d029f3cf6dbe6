package fingerprint

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var redColor = color.RGBA{255, 0, 0, 255}

func TestGaussianKernel_Normalized(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 9, 11} {
		kernel := gaussianKernel(size)

		if len(kernel) != size {
			t.Errorf("size %d: expected %d taps, got %d", size, size, len(kernel))
			continue
		}

		var sum float64
		for i, v := range kernel {
			sum += v
			if math.Abs(v-kernel[size-1-i]) > 1e-12 {
				t.Errorf("size %d: kernel not symmetric at %d", size, i)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("size %d: kernel sums to %f, want 1", size, sum)
		}
	}
}

func TestGaussianKernel_FiveTap(t *testing.T) {
	expected := []float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}
	kernel := gaussianKernel(5)

	for i := range expected {
		if kernel[i] != expected[i] {
			t.Errorf("tap %d = %f; want %f", i, kernel[i], expected[i])
		}
	}
}

func TestGaussianBlur_FlatImageUnchanged(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 12, 9))
	for i := range src.Pix {
		src.Pix[i] = 128
	}

	blurred := gaussianBlur(src, 5)

	for i, v := range blurred.Pix {
		if v != 128 {
			t.Fatalf("pixel %d changed to %d", i, v)
		}
	}
}

func TestGaussianBlur_Impulse(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 9, 9))
	src.SetGray(4, 4, color.Gray{Y: 255})

	blurred := gaussianBlur(src, 5)

	// Centre weight is (6/16)^2 of the impulse.
	if got := blurred.GrayAt(4, 4).Y; got != 36 {
		t.Errorf("centre = %d; want 36", got)
	}
	// Outside the 5x5 footprint nothing changes.
	if got := blurred.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("corner = %d; want 0", got)
	}
	if blurred.GrayAt(3, 4).Y != blurred.GrayAt(5, 4).Y {
		t.Error("blur should be symmetric around the impulse")
	}
}

func TestGaussianBlur_DisabledForSizeOne(t *testing.T) {
	src := createHorizontalGradient(10, 10)

	if gaussianBlur(src, 1) != src {
		t.Error("kernel size 1 should return the source image")
	}
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n     int
		expected int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{-3, 2, 1},
		{3, 1, 0},
	}

	for _, tc := range tests {
		if got := reflect101(tc.i, tc.n); got != tc.expected {
			t.Errorf("reflect101(%d, %d) = %d; want %d", tc.i, tc.n, got, tc.expected)
		}
	}
}
