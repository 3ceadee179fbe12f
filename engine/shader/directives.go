// directives.go holds the token patterns for the nine directive families of
// the extended WGSL dialect. Each directive starts with a small distinctive
// lexeme that WGSL itself never produces, so rewriting can stay textual and
// anchored to these exact forms.
package shader

import "regexp"

var (
	importRe = regexp.MustCompile(`@import\("([^"]+)"\)`)

	setTitleRe     = regexp.MustCompile(`@set_title\("([^"]+)"\)`)
	setSizeRe      = regexp.MustCompile(`@set_size\(\s*(\d+)\s*,\s*(\d+)\s*\)`)
	setTitleLineRe = regexp.MustCompile(`@set_title\([^)]*\)[^\n]*`)
	setSizeLineRe  = regexp.MustCompile(`@set_size\([^)]*\)[^\n]*`)

	textureRe      = regexp.MustCompile(`@texture\("([^"]+)"\)`)
	textureIndexRe = regexp.MustCompile(`@texture_index\("([^"]+)"\)`)
	videoRe        = regexp.MustCompile(`@video\("([^"]+)"\)`)
	cameraRe       = regexp.MustCompile(`@camera\(\s*(\d+)\s*\)`)
	soundRe        = regexp.MustCompile(`@sound\("([^"]+)"\)`)
	modelRe        = regexp.MustCompile(`@model\("([^"]+)"\)`)
	oscRe          = regexp.MustCompile(`@osc\("([^"]+)"\)`)

	strRe = regexp.MustCompile(`@str\("((?:[^"\\]|\\.)*)"\)`)

	gameStateRe = regexp.MustCompile(`struct\s+GameState\s*\{[^}]+\}`)
)

// scanUnique appends every capture of re in src to list, keeping
// first-occurrence order and dropping duplicates.
func scanUnique(re *regexp.Regexp, src string, list []string) []string {
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		name := m[1]
		dup := false
		for _, existing := range list {
			if existing == name {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, name)
		}
	}
	return list
}

// engineFieldRewrites maps @engine.* dialect tokens to their generated
// identifiers, applied in order. The sampler lives outside the host block
// struct, everything else resolves through the _engine storage variable.
var engineFieldRewrites = [][2]string{
	{"@engine.buttons", "_engine.buttons"},
	{"@engine.time", "_engine.time"},
	{"@engine.delta_time", "_engine.delta_time"},
	{"@engine.screen_width", "_engine.screen_width"},
	{"@engine.screen_height", "_engine.screen_height"},
	{"@engine.mouse", "_engine.mouse"},
	{"@engine.keys", "_engine.keys"},
	{"@engine.sampler", "_engine_sampler"},
	{"@engine.state", "_engine.state"},
	{"@engine.osc", "_engine.osc"},
	{"@engine.audio", "_engine.audio"},
}
