package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"github.com/spf13/cobra"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for x := range 16 {
		img.SetGray(x, 0, color.Gray{Y: uint8(x * 16)})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImportProfiles(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "Ada_Lovelace.png"))
	writePNG(t, filepath.Join(src, "Grace.jpg"))
	if err := os.WriteFile(filepath.Join(src, "broken.jpeg"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := profiles.Open(filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	result := importProfiles(context.Background(), store, src,
		[]string{"Ada_Lovelace.png", "Grace.jpg", "broken.jpeg"},
		func() { calls++ })

	if result.Imported != 2 || result.Failed != 1 || len(result.Errors) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if calls != 3 {
		t.Errorf("expected progress for every file, got %d", calls)
	}

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Identity != "Ada Lovelace" || list[1].Identity != "Grace" {
		t.Errorf("unexpected profiles %+v", list)
	}
}

func TestImportProfiles_Cancelled(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "Ada.png"))

	store, err := profiles.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := importProfiles(ctx, store, src, []string{"Ada.png"}, func() {})
	if result.Imported != 0 {
		t.Errorf("expected nothing imported after cancellation, got %d", result.Imported)
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2024, 5, 6, 14, 0, 0, 0, time.Local)

	day, err := parseDay(nil, now)
	if err != nil || !day.Equal(now) {
		t.Errorf("expected today, got %v %v", day, err)
	}

	day, err = parseDay([]string{"2024-03-01"}, now)
	if err != nil {
		t.Fatal(err)
	}
	if day.Year() != 2024 || day.Month() != time.March || day.Day() != 1 {
		t.Errorf("unexpected day %v", day)
	}

	if _, err := parseDay([]string{"01/03/2024"}, now); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestApplyThresholdFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected float64
		wantErr  bool
	}{
		{"unset keeps configured value", nil, constants.DefaultMatchThreshold, false},
		{"explicit zero", []string{"--threshold=0"}, 0, false},
		{"negative", []string{"--threshold=-0.5"}, -0.5, false},
		{"out of range", []string{"--threshold=1.5"}, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "recognize"}
			cmd.Flags().Float64("threshold", 0, "")
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := config.Default()

			err := applyThresholdFlag(cmd, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyThresholdFlag error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Matching.Threshold != tt.expected {
				t.Errorf("expected threshold %v, got %v", tt.expected, cfg.Matching.Threshold)
			}
		})
	}
}
