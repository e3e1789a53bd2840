package imagepipe

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func writeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "src.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestDecodeNoExif(t *testing.T) {
	path := writeTestJPEG(t, 100, 50)
	d, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Exif != nil {
		t.Fatalf("expected nil Exif for a plain JPEG")
	}
	b := d.Image.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("bounds = %v, want 100x50", b)
	}
}

func TestScaledDimsNoUpscale(t *testing.T) {
	w, h := scaledDims(100, 50, 1920)
	if w != 100 || h != 50 {
		t.Fatalf("scaledDims should not upscale, got %dx%d", w, h)
	}
}

func TestScaledDimsPreservesAspect(t *testing.T) {
	w, h := scaledDims(2000, 1000, 640)
	if w != 640 {
		t.Fatalf("long edge w = %d, want 640", w)
	}
	if h != 320 {
		t.Fatalf("short edge h = %d, want 320", h)
	}
}

func TestScaledDimsPortrait(t *testing.T) {
	w, h := scaledDims(1000, 2000, 640)
	if h != 640 {
		t.Fatalf("long edge h = %d, want 640", h)
	}
	if w != 320 {
		t.Fatalf("short edge w = %d, want 320", w)
	}
}

func TestThumbnailWritesFile(t *testing.T) {
	path := writeTestJPEG(t, 2000, 1000)
	d, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := filepath.Join(t.TempDir(), "thumb.jpg")
	w, h, err := Thumbnail(d.Image, out, 640)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if w != 640 || h != 320 {
		t.Fatalf("Thumbnail dims = %dx%d, want 640x320", w, h)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("thumbnail file missing: %v", err)
	}
}

func TestRequiredRungs(t *testing.T) {
	rungs := RequiredRungs(1000)
	want := []int{320, 640, 960}
	if len(rungs) != len(want) {
		t.Fatalf("RequiredRungs(1000) = %v, want %v", rungs, want)
	}
	for i := range want {
		if rungs[i] != want[i] {
			t.Fatalf("RequiredRungs(1000) = %v, want %v", rungs, want)
		}
	}
}

func TestRequiredRungsTinyImage(t *testing.T) {
	rungs := RequiredRungs(10)
	if len(rungs) != 0 {
		t.Fatalf("RequiredRungs(10) = %v, want none (no upscaling)", rungs)
	}
}

func TestOrientationOfNilExif(t *testing.T) {
	if got := orientationOf(nil); got != 1 {
		t.Fatalf("orientationOf(nil) = %d, want 1", got)
	}
}

func TestRotate90CWSwapsDims(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	rotated := rotate90CW(img)
	b := rotated.Bounds()
	if b.Dx() != 50 || b.Dy() != 100 {
		t.Fatalf("rotate90CW bounds = %v, want 50x100", b)
	}
}
