package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
)

func TestDirectorySourceReads(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.wgsl"), []byte("// game"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sprites"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sprites", "bob.png"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewDirectorySource(dir)
	text, err := s.ReadText("main.wgsl")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "// game" {
		t.Errorf("ReadText = %q", text)
	}
	data, err := s.ReadBytes("sprites/bob.png")
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("ReadBytes = %v", data)
	}
}

func TestDirectorySourceRejectsTraversal(t *testing.T) {
	s := NewDirectorySource(t.TempDir())
	_, err := s.ReadBytes("../etc/passwd")
	if !errors.Is(err, common.ErrAssetNotFound) {
		t.Fatalf("traversal error = %v, want ErrAssetNotFound", err)
	}
}

func TestDirectorySourceMissingFile(t *testing.T) {
	s := NewDirectorySource(t.TempDir())
	_, err := s.ReadBytes("nope.png")
	if !errors.Is(err, common.ErrAssetNotFound) {
		t.Fatalf("missing file error = %v, want ErrAssetNotFound", err)
	}
}

func zipBytes(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestArchiveSourceRoundTrip(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"main.wgsl": []byte("@set_title(\"zipped\")"),
		"bump.ogg":  {0xde, 0xad},
	})

	s, err := NewArchiveSource(data)
	if err != nil {
		t.Fatalf("NewArchiveSource: %v", err)
	}
	text, err := s.ReadText("main.wgsl")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "@set_title(\"zipped\")" {
		t.Errorf("ReadText = %q", text)
	}
	// A leading ./ is tolerated, matching directive paths like ./bump.ogg.
	if _, err := s.ReadBytes("./bump.ogg"); err != nil {
		t.Errorf("ReadBytes with ./ prefix: %v", err)
	}
	if _, err := s.ReadBytes("missing.png"); !errors.Is(err, common.ErrAssetNotFound) {
		t.Errorf("missing entry error = %v, want ErrAssetNotFound", err)
	}
}

func TestArchiveSourceRejectsGarbage(t *testing.T) {
	if _, err := NewArchiveSource([]byte("not a zip")); err == nil {
		t.Fatal("expected error for non-zip bytes")
	}
}

func TestOpenDetectsVariants(t *testing.T) {
	dir := t.TempDir()
	wgsl := filepath.Join(dir, "main.wgsl")
	if err := os.WriteFile(wgsl, []byte("// g"), 0o644); err != nil {
		t.Fatal(err)
	}
	zf := filepath.Join(dir, "game.bin")
	if err := os.WriteFile(zf, zipBytes(t, map[string][]byte{"main.wgsl": []byte("// z")}), 0o644); err != nil {
		t.Fatal(err)
	}

	// A .wgsl path roots the source at its parent directory.
	s, err := Open(wgsl)
	if err != nil {
		t.Fatalf("Open(.wgsl): %v", err)
	}
	if _, err := s.ReadText("main.wgsl"); err != nil {
		t.Errorf("read through .wgsl root: %v", err)
	}

	// A directory path is used as the root directly.
	if _, err := Open(dir); err != nil {
		t.Errorf("Open(dir): %v", err)
	}

	// Zip content is detected from the magic even without a .zip suffix.
	s, err = Open(zf)
	if err != nil {
		t.Fatalf("Open(zip): %v", err)
	}
	if text, _ := s.ReadText("main.wgsl"); text != "// z" {
		t.Errorf("zip read = %q", text)
	}
}
