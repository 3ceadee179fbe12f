package shader

// Manifest is the structured output of the preprocessor: everything the host
// needs to allocate GPU resources and bind them at the slots the generated
// WGSL expects. Binding numbers are a pure function of this struct, so two
// runs over the same game produce identical plans.
type Manifest struct {
	// Title is the window title, from @set_title (default "WGSL Game").
	Title string

	// Width and Height are the framebuffer size, from @set_size (default 800×600).
	Width  uint32
	Height uint32

	// Textures lists static texture asset paths in first-occurrence order.
	// Position i binds at group 0, binding 1+i.
	Textures []string

	// Videos lists video asset paths in first-occurrence order, bound after
	// the static textures in group 0.
	Videos []string

	// Cameras lists requested capture device indices, de-duplicated and
	// sorted ascending, bound after the videos in group 0.
	Cameras []uint32

	// Sounds lists audio asset paths in first-occurrence order. Position i is
	// the slot in the host block's audio trigger counter array.
	Sounds []string

	// Models lists OBJ asset paths in first-occurrence order. Model i binds
	// its positions at group 2, binding 1+2i and normals at binding 2+2i.
	Models []string

	// OscParams lists @osc parameter names in first-occurrence order.
	// Position i is the slot in the host block's osc float array.
	OscParams []string

	// GameStateSize is the byte size of the user's GameState struct under
	// std430, padded to at least 16 bytes.
	GameStateSize int

	// GameStateAlignment is the struct's alignment requirement (4, 8, or 16).
	GameStateAlignment int

	// GeneratedWGSL is the rewritten standard-WGSL program.
	GeneratedWGSL string
}

// OscSlot returns the osc array slot assigned to a parameter name.
//
// Parameters:
//   - name: the @osc parameter name
//
// Returns:
//   - int: the slot index
//   - bool: false if the name was not discovered by the preprocessor
func (m *Manifest) OscSlot(name string) (int, bool) {
	for i, p := range m.OscParams {
		if p == name {
			if i > 63 {
				return 63, true
			}
			return i, true
		}
	}
	return 0, false
}

// DynamicTextureCount returns the number of per-frame texture slots (videos
// plus cameras).
func (m *Manifest) DynamicTextureCount() int {
	return len(m.Videos) + len(m.Cameras)
}
