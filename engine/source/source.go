// Package source resolves game asset reads by relative path. A game is either
// a directory containing main.wgsl plus assets, a single .wgsl file (its
// parent directory becomes the root), or a zip archive with the same layout.
package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// zipMagic is the local-file-header signature every zip archive starts with.
var zipMagic = []byte("PK\x03\x04")

// Source reads game files by path relative to the game root.
type Source interface {
	// ReadBytes returns the raw contents of the named file.
	//
	// Parameters:
	//   - name: path relative to the game root
	//
	// Returns:
	//   - []byte: the file contents
	//   - error: common.ErrAssetNotFound if the name cannot be resolved
	ReadBytes(name string) ([]byte, error)

	// ReadText returns the contents of the named file as a UTF-8 string.
	//
	// Parameters:
	//   - name: path relative to the game root
	//
	// Returns:
	//   - string: the file contents
	//   - error: common.ErrAssetNotFound if the name cannot be resolved
	ReadText(name string) (string, error)
}

// Open resolves a game path into a Source. A path ending in .wgsl yields a
// directory source rooted at the file's parent; a .zip file (or any file
// starting with the zip magic) yields an archive source; a directory yields a
// directory source rooted at it. Any other file is rejected with an error.
//
// Parameters:
//   - path: the game file, archive, or directory
//
// Returns:
//   - Source: the resolver for the game's assets
//   - error: an error if the path cannot be opened
func Open(path string) (Source, error) {
	if strings.HasSuffix(path, ".wgsl") {
		root := filepath.Dir(path)
		if root == "" {
			root = "."
		}
		return NewDirectorySource(root), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open game %s: %w", path, err)
	}
	if info.IsDir() {
		return NewDirectorySource(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open game %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".zip") || bytes.HasPrefix(data, zipMagic) {
		return NewArchiveSource(data)
	}
	return nil, fmt.Errorf("open game %s: not a .wgsl file, directory, or zip archive", path)
}

// directorySource resolves reads against a filesystem root.
type directorySource struct {
	root string
}

var _ Source = &directorySource{}

// NewDirectorySource creates a Source rooted at the given directory.
//
// Parameters:
//   - root: the game root directory
//
// Returns:
//   - Source: the directory-backed resolver
func NewDirectorySource(root string) Source {
	return &directorySource{root: root}
}

func (d *directorySource) ReadBytes(name string) ([]byte, error) {
	// Reject parent traversal; asset paths are always inside the game root.
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return nil, fmt.Errorf("%s: directory traversal not allowed: %w", name, common.ErrAssetNotFound)
		}
	}
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, common.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (d *directorySource) ReadText(name string) (string, error) {
	data, err := d.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// archiveSource resolves reads against a zip archive loaded fully into
// memory as a flat name → bytes map.
type archiveSource struct {
	files map[string][]byte
}

var _ Source = &archiveSource{}

// NewArchiveSource creates a Source from raw zip archive bytes. The archive
// is decompressed eagerly so later reads never touch disk.
//
// Parameters:
//   - data: the raw bytes of the zip archive
//
// Returns:
//   - Source: the archive-backed resolver
//   - error: an error if the bytes are not a readable zip archive
func NewArchiveSource(data []byte) (Source, error) {
	if !bytes.HasPrefix(data, zipMagic) {
		return nil, fmt.Errorf("archive source: missing zip magic")
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("archive source: %w", err)
	}

	files := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("archive source: open %s: %w", f.Name, err)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("archive source: read %s: %w", f.Name, err)
		}
		files[f.Name] = contents
	}
	return &archiveSource{files: files}, nil
}

func (a *archiveSource) ReadBytes(name string) ([]byte, error) {
	stripped := strings.TrimPrefix(name, "./")
	data, ok := a.files[stripped]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, common.ErrAssetNotFound)
	}
	return data, nil
}

func (a *archiveSource) ReadText(name string) (string, error) {
	data, err := a.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// mapSource resolves reads against an in-memory map. Used by tests and by
// embedders that synthesize games programmatically.
type mapSource struct {
	files map[string]string
}

var _ Source = &mapSource{}

// NewMapSource creates a Source backed by a name → text map.
//
// Parameters:
//   - files: the file map; keys are game-relative paths
//
// Returns:
//   - Source: the map-backed resolver
func NewMapSource(files map[string]string) Source {
	return &mapSource{files: files}
}

func (m *mapSource) ReadBytes(name string) ([]byte, error) {
	text, ok := m.files[strings.TrimPrefix(name, "./")]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, common.ErrAssetNotFound)
	}
	return []byte(text), nil
}

func (m *mapSource) ReadText(name string) (string, error) {
	data, err := m.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
