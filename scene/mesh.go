package scene

// Mesh holds vertex data in SoA layout. Buffers are allocated once at
// the mesh's fixed capacity and never reallocated; Active marks how
// many entries are valid to draw. Growing Active is the caller's
// responsibility to initialize (see vfx.Pool); shrinking is metadata
// only.
type Mesh struct {
	// Positions is XYZ-interleaved, 3 floats per vertex.
	Positions []float32
	// Colors is RGBA-interleaved, 4 bytes per vertex. Nil for meshes
	// tinted uniformly through Node.Tint.
	Colors []uint8
	// Sizes is one float per point, used by point-cloud kinds. Nil
	// otherwise.
	Sizes []float32
	// Indices is a triangle list into Positions. Nil for point clouds.
	Indices []uint16

	// Active is the number of vertices (or points) currently drawn.
	Active int
	// Capacity is the fixed maximum Active may reach.
	Capacity int

	released bool
}

// NewMesh allocates a triangle mesh with room for capacity vertices and
// indexCap indices.
func NewMesh(capacity, indexCap int) *Mesh {
	m := &Mesh{
		Positions: make([]float32, capacity*3),
		Colors:    make([]uint8, capacity*4),
		Capacity:  capacity,
	}
	if indexCap > 0 {
		m.Indices = make([]uint16, 0, indexCap)
	}
	return m
}

// NewPointMesh allocates a point-cloud mesh with per-point sizes.
func NewPointMesh(capacity int) *Mesh {
	return &Mesh{
		Positions: make([]float32, capacity*3),
		Colors:    make([]uint8, capacity*4),
		Sizes:     make([]float32, capacity),
		Capacity:  capacity,
	}
}

// SetActive clamps n to [0, Capacity] and records it. It never
// reallocates; buffer identity is stable across any sequence of calls.
func (m *Mesh) SetActive(n int) {
	if n < 0 {
		n = 0
	}
	if n > m.Capacity {
		n = m.Capacity
	}
	m.Active = n
}

// SetPosition writes vertex i.
func (m *Mesh) SetPosition(i int, x, y, z float32) {
	m.Positions[i*3] = x
	m.Positions[i*3+1] = y
	m.Positions[i*3+2] = z
}

// Position reads vertex i.
func (m *Mesh) Position(i int) (x, y, z float32) {
	return m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
}

// SetColor writes the color of vertex i.
func (m *Mesh) SetColor(i int, c Color) {
	m.Colors[i*4] = c.R
	m.Colors[i*4+1] = c.G
	m.Colors[i*4+2] = c.B
	m.Colors[i*4+3] = c.A
}

// Release drops the buffers. Safe to call more than once.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	m.Positions = nil
	m.Colors = nil
	m.Sizes = nil
	m.Indices = nil
	m.Active = 0
}

// Released reports whether Release has run.
func (m *Mesh) Released() bool {
	return m.released
}
