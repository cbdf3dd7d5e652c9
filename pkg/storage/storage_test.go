package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gomcpgo/photo_studio_ai/pkg/types"
	"gopkg.in/yaml.v3"
)

// 1x1 transparent PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

func TestGenerateID(t *testing.T) {
	s := NewStorage(t.TempDir())

	id, err := s.GenerateID()
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 8 {
		t.Errorf("ID length = %d, want 8", len(id))
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "states", id)); err != nil {
		t.Errorf("state directory not created: %v", err)
	}

	id2, err := s.GenerateID()
	if err != nil {
		t.Fatalf("second GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("GenerateID returned duplicate IDs")
	}
}

func TestSaveImage_DataURL(t *testing.T) {
	s := NewStorage(t.TempDir())
	id, _ := s.GenerateID()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
	path, err := s.SaveImage(id, dataURL, "")
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if !strings.HasSuffix(path, "image.png") {
		t.Errorf("unexpected filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved image: %v", err)
	}
	if len(data) != len(tinyPNG) {
		t.Errorf("saved %d bytes, want %d", len(data), len(tinyPNG))
	}
}

func TestSaveImage_InvalidDataURL(t *testing.T) {
	s := NewStorage(t.TempDir())
	id, _ := s.GenerateID()

	if _, err := s.SaveImage(id, "data:nonsense", ""); err == nil {
		t.Error("expected error for malformed data URL")
	}
}

func TestImportFile(t *testing.T) {
	s := NewStorage(t.TempDir())
	id, _ := s.GenerateID()

	src := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(src, tinyPNG, 0644); err != nil {
		t.Fatal(err)
	}

	path, err := s.ImportFile(id, src, 10)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if filepath.Base(path) != "photo.png" {
		t.Errorf("imported filename = %s, want photo.png", filepath.Base(path))
	}
}

func TestImportFile_SizeLimit(t *testing.T) {
	s := NewStorage(t.TempDir())
	id, _ := s.GenerateID()

	src := filepath.Join(t.TempDir(), "big.png")
	if err := os.WriteFile(src, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.ImportFile(id, src, 1); err == nil {
		t.Error("expected size limit error")
	}
	// 0 disables the check
	if _, err := s.ImportFile(id, src, 0); err != nil {
		t.Errorf("size check should be disabled: %v", err)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())
	id, _ := s.GenerateID()

	meta := &types.ImageMetadata{
		ID:          id,
		Operation:   "ai_edit_image",
		Origin:      types.OriginAIEdit,
		Model:       "black-forest-labs/flux-kontext-pro",
		Instruction: "make the sky stormy",
	}
	if err := s.SaveMetadata(id, meta); err != nil {
		t.Fatalf("SaveMetadata failed: %v", err)
	}

	loaded, err := s.LoadMetadata(id)
	if err != nil {
		t.Fatalf("LoadMetadata failed: %v", err)
	}
	if loaded.Operation != meta.Operation || loaded.Instruction != meta.Instruction {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Version == "" {
		t.Error("version should default on save")
	}
	if loaded.Timestamp.IsZero() {
		t.Error("timestamp should default on save")
	}
}

func TestGallery(t *testing.T) {
	s := NewStorage(t.TempDir())

	src := filepath.Join(t.TempDir(), "export.png")
	if err := os.WriteFile(src, tinyPNG, 0644); err != nil {
		t.Fatal(err)
	}

	first, err := s.AddToGallery(src, "export")
	if err != nil {
		t.Fatalf("AddToGallery failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := s.AddToGallery(src, "export")
	if err != nil {
		t.Fatalf("second AddToGallery failed: %v", err)
	}

	entries, err := s.ListGallery()
	if err != nil {
		t.Fatalf("ListGallery failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("gallery has %d entries, want 2", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Error("ListGallery should return newest first")
	}

	got, err := s.GetGalleryEntry(first.ID)
	if err != nil {
		t.Fatalf("GetGalleryEntry failed: %v", err)
	}
	if got.Source != "export" {
		t.Errorf("Source = %s, want export", got.Source)
	}

	if err := s.RemoveFromGallery(first.ID); err != nil {
		t.Fatalf("RemoveFromGallery failed: %v", err)
	}
	if _, err := s.GetGalleryEntry(first.ID); err == nil {
		t.Error("entry should be gone after removal")
	}
	if err := s.RemoveFromGallery(first.ID); err == nil {
		t.Error("removing twice should fail")
	}
}

func TestListGallery_NewestFirst(t *testing.T) {
	s := NewStorage(t.TempDir())
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Directory order deliberately disagrees with timestamp order.
	for id, ts := range map[string]time.Time{
		"aaa": base.Add(1 * time.Hour),
		"bbb": base.Add(3 * time.Hour),
		"ccc": base.Add(2 * time.Hour),
	} {
		dir := filepath.Join(s.Root(), "gallery", id)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		entry := types.GalleryEntry{ID: id, Filename: "image.png", Timestamp: ts}
		data, err := yaml.Marshal(entry)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "entry.yaml"), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.ListGallery()
	if err != nil {
		t.Fatalf("ListGallery failed: %v", err)
	}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ID
	}
	want := []string{"bbb", "ccc", "aaa"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestListGallery_EmptyRoot(t *testing.T) {
	s := NewStorage(t.TempDir())
	entries, err := s.ListGallery()
	if err != nil {
		t.Fatalf("ListGallery failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty gallery, got %d entries", len(entries))
	}
}

func TestImageToBase64(t *testing.T) {
	src := filepath.Join(t.TempDir(), "img.jpg")
	if err := os.WriteFile(src, []byte("jpegdata"), 0644); err != nil {
		t.Fatal(err)
	}

	dataURL, err := ImageToBase64(src, 10)
	if err != nil {
		t.Fatalf("ImageToBase64 failed: %v", err)
	}
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Errorf("unexpected prefix: %s", dataURL[:30])
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.SplitN(dataURL, ",", 2)[1])
	if err != nil {
		t.Fatalf("payload not valid base64: %v", err)
	}
	if string(decoded) != "jpegdata" {
		t.Error("payload round trip mismatch")
	}
}
