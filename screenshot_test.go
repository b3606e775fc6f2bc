package calendar

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"week", "week"},
		{"  month view ", "month_view"},
		{"group/day:1", "group_day_1"},
		{"v1.2-final", "v1.2-final"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"日本", "__"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
		200, 200, 200, 100, // over-bright clamps
	}
	img := unpremultiply(pixels, 2, 2)

	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
		255, 255, 255, 100,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{255, 0, 0, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("bounds = %v", decoded.Bounds())
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), img); err == nil {
		t.Error("expected error for a missing directory")
	}
}
