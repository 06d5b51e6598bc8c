package processing

import (
	"encoding/base64"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// createTestImage creates a simple test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}
	return img
}

func TestNewProcessor(t *testing.T) {
	if NewProcessor() == nil {
		t.Error("NewProcessor() returned nil")
	}
}

func TestDownscale(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(1024, 512)

	small := p.Downscale(img, 256)
	b := small.Bounds()
	if b.Dx() != 256 {
		t.Errorf("Expected width 256, got %d", b.Dx())
	}
	if b.Dy() != 128 {
		t.Errorf("Expected height 128 (aspect preserved), got %d", b.Dy())
	}
}

func TestDownscaleNoop(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(100, 80)

	same := p.Downscale(img, 512)
	if same.Bounds().Dx() != 100 || same.Bounds().Dy() != 80 {
		t.Error("Images within the cap should not be resized")
	}

	same = p.Downscale(img, 0)
	if same.Bounds().Dx() != 100 {
		t.Error("Zero cap should disable downscaling")
	}
}

func TestPrepareImageForModel(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(200, 100)

	b64, err := p.PrepareImageForModel(img, "jpg", 128, 85)
	if err != nil {
		t.Fatalf("PrepareImageForModel failed: %v", err)
	}
	if b64 == "" {
		t.Fatal("Expected non-empty base64 output")
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("Output should be valid base64: %v", err)
	}
	if len(data) == 0 {
		t.Error("Decoded image data should not be empty")
	}
}

func TestPrepareImageForModelPNG(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(50, 50)

	b64, err := p.PrepareImageForModel(img, "png", 0, 0)
	if err != nil {
		t.Fatalf("PrepareImageForModel failed: %v", err)
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("Output should be valid base64: %v", err)
	}
	// PNG signature
	if len(data) < 8 || data[0] != 0x89 || data[1] != 'P' {
		t.Error("Expected PNG-encoded data")
	}
}

func TestFingerprint(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(64, 64)

	fp, err := p.Fingerprint(img)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if fp.AHash == "" || fp.DHash == "" || fp.PHash == "" {
		t.Errorf("All hashes should be populated, got %+v", fp)
	}

	// Same image, same hashes
	again, err := p.Fingerprint(img)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if fp != again {
		t.Errorf("Fingerprint should be deterministic: %+v vs %+v", fp, again)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	p := NewProcessor()
	if _, err := p.LoadImage("/nonexistent/image.jpg"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadImageFromURLRejectsScheme(t *testing.T) {
	p := NewProcessor()
	if _, err := p.LoadImageFromURL("ftp://example.com/image.jpg"); err == nil {
		t.Error("Expected error for unsupported URL scheme")
	}
}

func TestLoadImageFromDisk(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(40, 30)
	path := filepath.Join(t.TempDir(), "test.jpg")

	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	loaded, err := p.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if loaded.Bounds().Dx() != 40 || loaded.Bounds().Dy() != 30 {
		t.Errorf("Round trip changed dimensions: %v", loaded.Bounds())
	}
}

func TestExtractMetadataMissingFile(t *testing.T) {
	p := NewProcessor()

	meta := p.ExtractMetadata("/nonexistent/photo.jpg")
	if meta.Format != "jpg" {
		t.Errorf("Format should come from the extension, got %q", meta.Format)
	}
	if meta.CameraMake != "" || meta.Artist != "" {
		t.Error("Missing file should yield empty metadata fields")
	}
}

func TestExtractMetadataNoEXIF(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(20, 20)
	path := filepath.Join(t.TempDir(), "plain.jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	meta := p.ExtractMetadata(path)
	if meta.Format != "jpg" {
		t.Errorf("Expected format jpg, got %q", meta.Format)
	}
	if meta.CameraMake != "" {
		t.Errorf("Synthetic image should carry no camera make, got %q", meta.CameraMake)
	}
}
