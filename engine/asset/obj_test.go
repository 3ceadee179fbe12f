package asset

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// vec3At reads the vec3 stored in the i-th 16-byte slot.
func vec3At(t *testing.T, buf []byte, i int) [3]float32 {
	t.Helper()
	if len(buf) < (i+1)*16 {
		t.Fatalf("buffer too short for slot %d", i)
	}
	var v [3]float32
	for c := 0; c < 3; c++ {
		v[c] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*16+c*4:]))
	}
	return v
}

func TestLoadOBJTriangle(t *testing.T) {
	obj := `# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	m, err := LoadOBJ("tri.obj", obj)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if m.VertexCount != 3 {
		t.Fatalf("VertexCount = %d, want 3", m.VertexCount)
	}
	if len(m.Positions) != 48 || len(m.Normals) != 48 {
		t.Fatalf("buffer sizes = %d/%d, want 48/48", len(m.Positions), len(m.Normals))
	}
	// Expansion order follows the face declaration.
	if got := vec3At(t, m.Positions, 1); got != [3]float32{1, 0, 0} {
		t.Errorf("position 1 = %v", got)
	}
	if got := vec3At(t, m.Normals, 2); got != [3]float32{0, 0, 1} {
		t.Errorf("normal 2 = %v", got)
	}
	// The fourth lane of every slot is zero padding.
	for i := 0; i < m.VertexCount; i++ {
		if w := binary.LittleEndian.Uint32(m.Positions[i*16+12:]); w != 0 {
			t.Errorf("position slot %d w-lane = %d, want 0", i, w)
		}
	}
}

func TestLoadOBJQuadFanning(t *testing.T) {
	obj := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := LoadOBJ("quad.obj", obj)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	// A quad fans into two triangles: (0,1,2) and (0,2,3).
	if m.VertexCount != 6 {
		t.Fatalf("VertexCount = %d, want 6", m.VertexCount)
	}
	if got := vec3At(t, m.Positions, 3); got != [3]float32{0, 0, 0} {
		t.Errorf("second triangle does not start at vertex 0: %v", got)
	}
	if got := vec3At(t, m.Positions, 4); got != [3]float32{1, 1, 0} {
		t.Errorf("second triangle middle vertex = %v", got)
	}
}

func TestLoadOBJComputedNormals(t *testing.T) {
	// CCW triangle in the XY plane: the generated normal points +Z.
	obj := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := LoadOBJ("flat.obj", obj)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	for i := 0; i < 3; i++ {
		n := vec3At(t, m.Normals, i)
		if n != [3]float32{0, 0, 1} {
			t.Errorf("normal %d = %v, want (0,0,1)", i, n)
		}
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	obj := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := LoadOBJ("neg.obj", obj)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if got := vec3At(t, m.Positions, 0); got != [3]float32{0, 0, 0} {
		t.Errorf("position 0 = %v", got)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		obj  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"bad vertex", "v 0 zero 0\nf 1 1 1\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadOBJ("bad.obj", tc.obj); !errors.Is(err, common.ErrObjParse) {
				t.Errorf("err = %v, want ErrObjParse", err)
			}
		})
	}
}
