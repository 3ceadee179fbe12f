// obj.go parses Wavefront OBJ meshes into flat position/normal storage
// buffers. Faces are expanded into a per-vertex sequence (no index buffer);
// each 3D vector occupies a 16-byte slot with a zero fourth lane, matching
// the std430 stride of array<vec3f> in the generated shader.
package asset

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Model is a decoded OBJ mesh in GPU-upload form.
type Model struct {
	// Path is the asset path from the manifest.
	Path string

	// VertexCount is the number of expanded face vertices; the render pass
	// draws exactly this many vertices for model 0.
	VertexCount int

	// Positions and Normals hold VertexCount 16-byte vec3 slots each.
	Positions []byte
	Normals   []byte
}

// faceVertex is one corner of a face: indices into the position and normal
// tables (normal < 0 when the face carries no normal reference).
type faceVertex struct {
	position int
	normal   int
}

// LoadOBJ parses OBJ text into a Model.
//
// Parameters:
//   - name: the asset path, for error reporting
//   - text: the OBJ file contents
//
// Returns:
//   - *Model: the expanded mesh
//   - error: common.ErrObjParse wrapping the failure
func LoadOBJ(name, text string) (*Model, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		faces     [][]faceVertex
	)

	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v", "vn":
			if len(parts) < 4 {
				return nil, fmt.Errorf("%s:%d: %s needs three components: %w", name, lineNum+1, parts[0], common.ErrObjParse)
			}
			var v mgl32.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(parts[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: bad %s component %q: %w", name, lineNum+1, parts[0], parts[i+1], common.ErrObjParse)
				}
				v[i] = float32(f)
			}
			if parts[0] == "v" {
				positions = append(positions, v)
			} else {
				normals = append(normals, v)
			}
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least three vertices: %w", name, lineNum+1, common.ErrObjParse)
			}
			face := make([]faceVertex, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				fv, err := parseFaceVertex(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %v: %w", name, lineNum+1, err, common.ErrObjParse)
				}
				face = append(face, fv)
			}
			// Fan polygons from the first vertex: (0,1,2), (0,2,3), …
			for i := 1; i+1 < len(face); i++ {
				faces = append(faces, []faceVertex{face[0], face[i], face[i+1]})
			}
		default:
			// vt, mtllib, usemtl, o, g, s — not used by the host.
		}
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("%s: no faces: %w", name, common.ErrObjParse)
	}

	// Faces with no normal reference fall back to per-position normals
	// accumulated from the face cross products.
	computed := computeVertexNormals(positions, faces)

	m := &Model{Path: name}
	for _, tri := range faces {
		for _, fv := range tri {
			m.Positions = appendVec3(m.Positions, positions[fv.position])
			var n mgl32.Vec3
			if fv.normal >= 0 && fv.normal < len(normals) {
				n = normals[fv.normal]
			} else {
				n = computed[fv.position]
			}
			m.Normals = appendVec3(m.Normals, n)
			m.VertexCount++
		}
	}
	return m, nil
}

// parseFaceVertex decodes one face reference of the forms v, v/vt, v/vt/vn,
// or v//vn. OBJ indices are 1-based; negative indices count from the end.
func parseFaceVertex(ref string, positionCount, normalCount int) (faceVertex, error) {
	fields := strings.Split(ref, "/")

	pos, err := objIndex(fields[0], positionCount)
	if err != nil {
		return faceVertex{}, fmt.Errorf("bad position index %q", fields[0])
	}

	normal := -1
	if len(fields) == 3 && fields[2] != "" {
		normal, err = objIndex(fields[2], normalCount)
		if err != nil {
			return faceVertex{}, fmt.Errorf("bad normal index %q", fields[2])
		}
	}
	return faceVertex{position: pos, normal: normal}, nil
}

// objIndex converts a 1-based (or negative, from-the-end) OBJ index into a
// 0-based slice index.
func objIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range", n)
	}
	return n - 1, nil
}

// computeVertexNormals sums each face's cross product into its referenced
// vertices, then normalizes.
func computeVertexNormals(positions []mgl32.Vec3, faces [][]faceVertex) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for _, tri := range faces {
		v0 := positions[tri[0].position]
		v1 := positions[tri[1].position]
		v2 := positions[tri[2].position]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, fv := range tri {
			normals[fv.position] = normals[fv.position].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}

// appendVec3 packs a vec3 into a 16-byte slot, fourth lane zero.
func appendVec3(buf []byte, v mgl32.Vec3) []byte {
	var slot [16]byte
	binary.LittleEndian.PutUint32(slot[0:], math.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(slot[4:], math.Float32bits(v.Y()))
	binary.LittleEndian.PutUint32(slot[8:], math.Float32bits(v.Z()))
	return append(buf, slot[:]...)
}
