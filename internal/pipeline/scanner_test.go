package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages_Directory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "sub", "c.webp"))
	touch(t, filepath.Join(dir, "notes.txt"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("found %d sources, want 3: %+v", len(sources), sources)
	}
	for _, s := range sources {
		if !filepath.IsAbs(s.AbsPath) {
			t.Errorf("path not absolute: %s", s.AbsPath)
		}
		if s.Size == 0 {
			t.Errorf("size not recorded for %s", s.Name)
		}
	}
}

func TestScanImages_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, ".cache", "b.png"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("found %d sources, want 1", len(sources))
	}
	if sources[0].Name != "a.png" {
		t.Errorf("scanned the hidden directory: %s", sources[0].Name)
	}
}

func TestScanImages_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.jpeg")
	touch(t, path)

	sources, err := ScanImages(path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "single.jpeg" {
		t.Fatalf("sources = %+v", sources)
	}
}

func TestScanImages_RejectsNonImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	touch(t, path)

	if _, err := ScanImages(path); err == nil {
		t.Error("expected an error for a non-image file")
	}
}

func TestScanImages_MissingPath(t *testing.T) {
	if _, err := ScanImages(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing path")
	}
}
