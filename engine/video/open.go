package video

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// Open creates a Video for an asset by extension. GIFs decode natively from
// the given bytes; other containers are spilled to a temporary file so
// ffmpeg can demux them (archive sources have no on-disk path to hand over).
//
// Parameters:
//   - name: the asset path from the manifest
//   - data: the raw asset bytes
//
// Returns:
//   - Video: the playing source
//   - error: an error if the asset cannot be opened
func Open(name string, data []byte) (Video, error) {
	if strings.EqualFold(path.Ext(name), ".gif") {
		return NewGIFSource(name, data)
	}

	tmp, err := os.CreateTemp("", "wgslbox-*"+path.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("%s: spill video: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("%s: spill video: %w", name, err)
	}
	tmp.Close()

	v, err := NewFileSource(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &tempFileVideo{Video: v, path: tmp.Name()}, nil
}

// tempFileVideo removes its spilled file on close.
type tempFileVideo struct {
	Video
	path string
}

func (t *tempFileVideo) Close() error {
	err := t.Video.Close()
	os.Remove(t.path)
	return err
}
