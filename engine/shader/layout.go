// layout.go computes the std430 layout of the user's GameState struct. The
// host and the generated WGSL share the host block byte-for-byte, so these
// offsets must match what the downstream WGSL compiler assigns; the
// calculator therefore applies real per-field alignment rather than a naive
// size sum.
package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// Sentinel layout used when the game declares no GameState struct. The host
// block always reserves this region so the state field starts at a fixed
// offset regardless.
const (
	DefaultStateSize      = 16
	DefaultStateAlignment = 4
)

// FieldLayout describes one GameState member after std430 placement.
type FieldLayout struct {
	// Name is the WGSL field name.
	Name string

	// Type is the declared WGSL type text.
	Type string

	// Offset is the byte offset of the field within GameState.
	Offset int

	// Size is the byte size of the field (array strides included).
	Size int

	// Align is the field's alignment requirement.
	Align int
}

// StateLayout is the computed layout of a GameState struct.
type StateLayout struct {
	// Fields lists the members in declaration order with resolved offsets.
	Fields []FieldLayout

	// Size is the struct size rounded up to Align.
	Size int

	// Align is the struct alignment: the max of any member alignment.
	Align int

	// Source is the struct's literal WGSL text, re-emitted into the
	// generated header.
	Source string
}

// structFields splits a struct body into (name, type) pairs. Splitting is
// depth-aware because array types carry a comma (`array<i32, 400>`) that a
// flat comma split would cut in half.
func structFields(body string) [][2]string {
	var out [][2]string
	depth := 0
	start := 0
	flush := func(end int) {
		decl := strings.TrimSpace(strings.Trim(body[start:end], ",;"))
		if decl == "" {
			return
		}
		name, typ, ok := strings.Cut(decl, ":")
		if !ok {
			return
		}
		out = append(out, [2]string{strings.TrimSpace(name), strings.TrimSpace(typ)})
	}
	for i, r := range body {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',', ';', '\n':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(body))
	return out
}

// scalarTypeInfo returns size and alignment for a non-array WGSL type.
func scalarTypeInfo(t string) (size, align int, ok bool) {
	switch {
	case strings.Contains(t, "vec4"):
		return 16, 16, true
	case strings.Contains(t, "vec3"):
		return 12, 16, true
	case strings.Contains(t, "vec2"):
		return 8, 8, true
	case strings.Contains(t, "u32"), strings.Contains(t, "i32"), strings.Contains(t, "f32"):
		return 4, 4, true
	}
	return 0, 0, false
}

// typeInfo resolves size and alignment for a GameState field type, applying
// the std430 array rule: element stride is the element size rounded up to
// the element alignment, so vec3 arrays stride at 16 bytes.
func typeInfo(t string) (size, align int, err error) {
	if inner, ok := strings.CutPrefix(t, "array<"); ok {
		inner = strings.TrimSuffix(inner, ">")
		elemType, countStr, ok := strings.Cut(inner, ",")
		if !ok {
			return 0, 0, fmt.Errorf("array type %q missing element count: %w", t, common.ErrPreprocessSyntax)
		}
		count, convErr := strconv.Atoi(strings.TrimSpace(countStr))
		if convErr != nil || count <= 0 {
			return 0, 0, fmt.Errorf("array type %q has invalid count: %w", t, common.ErrPreprocessSyntax)
		}
		elemSize, elemAlign, known := scalarTypeInfo(strings.TrimSpace(elemType))
		if !known {
			return 0, 0, fmt.Errorf("array type %q has unsupported element: %w", t, common.ErrPreprocessSyntax)
		}
		stride := roundUp(elemSize, elemAlign)
		return stride * count, elemAlign, nil
	}

	s, a, known := scalarTypeInfo(t)
	if !known {
		return 0, 0, fmt.Errorf("unsupported GameState field type %q: %w", t, common.ErrPreprocessSyntax)
	}
	return s, a, nil
}

// ParseGameState finds the GameState struct literal in fully-inlined shader
// source and computes its std430 layout.
//
// Parameters:
//   - src: the inlined shader source
//
// Returns:
//   - *StateLayout: the computed layout, or nil when no GameState exists
//   - error: common.ErrPreprocessSyntax if a field type cannot be resolved
func ParseGameState(src string) (*StateLayout, error) {
	match := gameStateRe.FindString(src)
	if match == "" {
		return nil, nil
	}

	open := strings.Index(match, "{")
	body := match[open+1 : len(match)-1]

	layout := &StateLayout{Align: DefaultStateAlignment, Source: match}
	cursor := 0
	for _, f := range structFields(body) {
		name, typ := f[0], f[1]
		size, align, err := typeInfo(typ)
		if err != nil {
			return nil, fmt.Errorf("GameState field %s: %w", name, err)
		}
		cursor = roundUp(cursor, align)
		layout.Fields = append(layout.Fields, FieldLayout{
			Name:   name,
			Type:   typ,
			Offset: cursor,
			Size:   size,
			Align:  align,
		})
		cursor += size
		if align > layout.Align {
			layout.Align = align
		}
	}
	layout.Size = roundUp(cursor, layout.Align)
	return layout, nil
}

// PaddedSize returns the layout's size padded to the minimum state region
// size the host block always reserves.
func (l *StateLayout) PaddedSize() int {
	if l == nil || l.Size < DefaultStateSize {
		return DefaultStateSize
	}
	return l.Size
}

// PadWords returns how many trailing u32 padding slots the generated header
// must add after the state field so the WGSL layout matches PaddedSize.
func (l *StateLayout) PadWords() int {
	if l == nil {
		return DefaultStateSize / 4
	}
	if l.Size >= DefaultStateSize {
		return 0
	}
	return (DefaultStateSize - l.Size) / 4
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}
