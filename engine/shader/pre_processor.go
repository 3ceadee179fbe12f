// pre_processor.go implements the WGSL dialect preprocessor. It inlines
// @import files exactly once each, discovers every referenced asset and OSC
// parameter in first-occurrence order, measures the user's GameState struct,
// prepends the generated header, and rewrites directive occurrences to the
// generated identifiers. The result is a Manifest whose binding numbers the
// host materializes verbatim.
package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
	"github.com/charmbracelet/log"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// src resolves @import and asset paths.
	src source.Source

	// imported tracks which paths have been inlined during the current
	// Process call; second and later imports of a path are elided.
	imported map[string]bool

	// logger reports non-fatal load conditions (OSC slot overflow, malformed
	// @set_size falling back to defaults).
	logger *log.Logger
}

// PreProcessor compiles the extended WGSL dialect into a standard WGSL
// program plus the binding manifest the host allocates from.
type PreProcessor interface {
	// Process reads the entry shader from the game source, resolves imports,
	// and produces the manifest with the fully rewritten WGSL.
	//
	// Parameters:
	//   - entry: the entry shader path, usually "main.wgsl"
	//
	// Returns:
	//   - *Manifest: the program manifest including the generated WGSL
	//   - error: common.ErrAssetNotFound if an import is missing, or
	//     common.ErrPreprocessSyntax if a GameState field cannot be measured
	Process(entry string) (*Manifest, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor reading from the given game source.
//
// Parameters:
//   - src: the game's file resolver
//   - options: functional options for preprocessor configuration
//
// Returns:
//   - PreProcessor: a ready-to-use preprocessor instance
func NewPreProcessor(src source.Source, options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		src:    src,
		logger: log.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// PreProcessorOption configures a PreProcessor during construction.
type PreProcessorOption func(*preProcessor)

// WithLogger overrides the logger used for load-time warnings.
//
// Parameters:
//   - logger: the logger to use
func WithLogger(logger *log.Logger) PreProcessorOption {
	return func(p *preProcessor) {
		p.logger = logger
	}
}

func (p *preProcessor) Process(entry string) (*Manifest, error) {
	p.imported = make(map[string]bool)

	text, err := p.src.ReadText(entry)
	if err != nil {
		return nil, fmt.Errorf("read entry shader: %w", err)
	}

	src, err := p.expandImports(text)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Title:  "WGSL Game",
		Width:  800,
		Height: 600,
	}

	if cap := setTitleRe.FindStringSubmatch(src); cap != nil {
		m.Title = cap[1]
	}
	if cap := setSizeRe.FindStringSubmatch(src); cap != nil {
		w, _ := strconv.ParseUint(cap[1], 10, 32)
		h, _ := strconv.ParseUint(cap[2], 10, 32)
		m.Width, m.Height = uint32(w), uint32(h)
	} else if setSizeLineRe.MatchString(src) {
		p.logger.Warn("malformed @set_size, using defaults", "width", m.Width, "height", m.Height)
	}

	m.Sounds = scanUnique(soundRe, src, nil)
	m.Textures = scanUnique(textureRe, src, nil)
	m.Textures = scanUnique(textureIndexRe, src, m.Textures)
	m.Videos = scanUnique(videoRe, src, nil)
	m.Models = scanUnique(modelRe, src, nil)
	m.OscParams = scanUnique(oscRe, src, nil)
	if len(m.OscParams) > common.OscSlotCount {
		p.logger.Warn("too many OSC parameters, extras share the last slot",
			"count", len(m.OscParams), "max", common.OscSlotCount)
	}

	// Camera device indices de-duplicate and sort ascending: slot i is the
	// i-th smallest requested device, independent of occurrence order.
	for _, cap := range cameraRe.FindAllStringSubmatch(src, -1) {
		idx, _ := strconv.ParseUint(cap[1], 10, 32)
		dup := false
		for _, existing := range m.Cameras {
			if existing == uint32(idx) {
				dup = true
				break
			}
		}
		if !dup {
			m.Cameras = append(m.Cameras, uint32(idx))
		}
	}
	sort.Slice(m.Cameras, func(i, j int) bool { return m.Cameras[i] < m.Cameras[j] })

	src = setTitleLineRe.ReplaceAllString(src, "")
	src = setSizeLineRe.ReplaceAllString(src, "")

	state, err := ParseGameState(src)
	if err != nil {
		return nil, err
	}
	m.GameStateSize = state.PaddedSize()
	if state != nil {
		m.GameStateAlignment = state.Align
	} else {
		m.GameStateAlignment = DefaultStateAlignment
	}

	header := buildHeader(m, state)
	if state != nil {
		// The struct moves into the header; remove it from the body.
		src = gameStateRe.ReplaceAllString(src, "")
	}

	src = p.rewrite(src, m)
	m.GeneratedWGSL = header + src
	return m, nil
}

// expandImports inlines every @import depth-first. The first import of a
// path is replaced with its processed body; later imports become an elision
// comment, which also cuts cycles.
func (p *preProcessor) expandImports(src string) (string, error) {
	for {
		loc := importRe.FindStringSubmatchIndex(src)
		if loc == nil {
			return src, nil
		}
		name := src[loc[2]:loc[3]]

		var repl string
		if p.imported[name] {
			repl = "// Already imported: " + name
		} else {
			p.imported[name] = true
			body, err := p.src.ReadText(name)
			if err != nil {
				return "", fmt.Errorf("import %q: %w", name, err)
			}
			inlined, err := p.expandImports(body)
			if err != nil {
				return "", err
			}
			repl = "// Imported from " + name + "\n" + inlined + "\n"
		}
		src = src[:loc[0]] + repl + src[loc[1]:]
	}
}

// rewrite replaces every non-import directive occurrence in the body with
// its generated identifier. Replacements are anchored to the exact token
// forms, so ordinary WGSL text is never touched.
func (p *preProcessor) rewrite(src string, m *Manifest) string {
	for _, r := range engineFieldRewrites {
		src = strings.ReplaceAll(src, r[0], r[1])
	}

	for i, name := range m.OscParams {
		slot := i
		if slot > common.OscSlotCount-1 {
			slot = common.OscSlotCount - 1
		}
		re := regexp.MustCompile(`@osc\("` + regexp.QuoteMeta(name) + `"\)`)
		src = re.ReplaceAllString(src, fmt.Sprintf("_engine.osc[%d]", slot))
	}

	for i, name := range m.Sounds {
		quoted := regexp.QuoteMeta(name)
		playRe := regexp.MustCompile(`@sound\("` + quoted + `"\)\.play\(\)`)
		src = playRe.ReplaceAllString(src, fmt.Sprintf("_engine.audio[%d]++", i))
		stopRe := regexp.MustCompile(`@sound\("` + quoted + `"\)\.stop\(\)`)
		src = stopRe.ReplaceAllString(src, fmt.Sprintf("/* stop sound %d - not implemented */", i))
		legacyRe := regexp.MustCompile(`@sound\("` + quoted + `"\)`)
		src = legacyRe.ReplaceAllString(src, fmt.Sprintf("_engine.audio[%d]", i))
	}

	// @texture_index before @texture is not required — the regexes cannot
	// overlap — but texture_index rewrites to the slot literal while texture
	// rewrites to the binding identifier.
	for i, name := range m.Textures {
		quoted := regexp.QuoteMeta(name)
		idxRe := regexp.MustCompile(`@texture_index\("` + quoted + `"\)`)
		src = idxRe.ReplaceAllString(src, fmt.Sprintf("%du", i))
		texRe := regexp.MustCompile(`@texture\("` + quoted + `"\)`)
		src = texRe.ReplaceAllString(src, fmt.Sprintf("_texture_%d", i))
	}

	for i, name := range m.Videos {
		re := regexp.MustCompile(`@video\("` + regexp.QuoteMeta(name) + `"\)`)
		src = re.ReplaceAllString(src, fmt.Sprintf("_video_%d", i))
	}

	for i, device := range m.Cameras {
		re := regexp.MustCompile(`@camera\(\s*` + strconv.FormatUint(uint64(device), 10) + `\s*\)`)
		src = re.ReplaceAllString(src, fmt.Sprintf("_camera_%d", i))
	}

	src = strRe.ReplaceAllStringFunc(src, func(full string) string {
		lit := strRe.FindStringSubmatch(full)[1]
		return strArrayLiteral(lit)
	})

	for i, name := range m.Models {
		quoted := regexp.QuoteMeta(name)
		posRe := regexp.MustCompile(`@model\("` + quoted + `"\)\.positions`)
		src = posRe.ReplaceAllString(src, fmt.Sprintf("_model_%d_positions.data", i))
		normRe := regexp.MustCompile(`@model\("` + quoted + `"\)\.normals`)
		src = normRe.ReplaceAllString(src, fmt.Sprintf("_model_%d_normals.data", i))
		bareRe := regexp.MustCompile(`@model\("` + quoted + `"\)`)
		src = bareRe.ReplaceAllString(src, fmt.Sprintf("/* @model(%q) - use .positions or .normals */", name))
	}

	return src
}

// strLen is the fixed element count of every @str array literal.
const strLen = 128

// strArrayLiteral converts a @str string literal (still carrying its escape
// sequences) into a fixed-width array<u32, 128> of character codes, truncated
// or zero-padded to exactly 128 slots.
func strArrayLiteral(lit string) string {
	runes := []rune(lit)
	var codes []uint32
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				codes = append(codes, '\n')
				i += 2
				continue
			case 'r':
				codes = append(codes, '\r')
				i += 2
				continue
			case 't':
				codes = append(codes, '\t')
				i += 2
				continue
			case '"':
				codes = append(codes, '"')
				i += 2
				continue
			case '\\':
				codes = append(codes, '\\')
				i += 2
				continue
			}
		}
		codes = append(codes, uint32(r))
		i++
	}

	if len(codes) > strLen {
		codes = codes[:strLen]
	}
	for len(codes) < strLen {
		codes = append(codes, 0)
	}

	parts := make([]string, strLen)
	for i, c := range codes {
		parts[i] = strconv.FormatUint(uint64(c), 10) + "u"
	}
	return "array<u32, 128>(" + strings.Join(parts, ", ") + ")"
}
