package vfx

import "github.com/lumamoss/cellscape/geom"

// History is a bounded FIFO of recorded world positions, oldest first.
// It backs the tapered ribbon: Push appends the newest point and evicts
// the oldest once the cap is reached, giving a constant-memory moving
// window. Implemented as a ring so steady-state pushes allocate
// nothing.
type History struct {
	buf   []geom.Vec3
	head  int // index of oldest element
	count int
}

// NewHistory creates a history holding at most cap points.
func NewHistory(cap int) *History {
	if cap < 2 {
		cap = 2
	}
	return &History{buf: make([]geom.Vec3, cap)}
}

// Cap returns the configured maximum length.
func (h *History) Cap() int {
	return len(h.buf)
}

// Len returns the current number of stored points.
func (h *History) Len() int {
	return h.count
}

// Push appends p as the newest point, evicting the oldest when full.
func (h *History) Push(p geom.Vec3) {
	if h.count < len(h.buf) {
		h.buf[(h.head+h.count)%len(h.buf)] = p
		h.count++
		return
	}
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
}

// At returns the i-th stored point, 0 = oldest.
func (h *History) At(i int) geom.Vec3 {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Newest returns the most recently pushed point. Undefined when empty.
func (h *History) Newest() geom.Vec3 {
	return h.At(h.count - 1)
}

// CopyTo appends all points oldest-to-newest into dst and returns it.
// Passing a reused scratch slice avoids per-frame allocation.
func (h *History) CopyTo(dst []geom.Vec3) []geom.Vec3 {
	for i := 0; i < h.count; i++ {
		dst = append(dst, h.At(i))
	}
	return dst
}

// Clear empties the history without releasing the buffer.
func (h *History) Clear() {
	h.head = 0
	h.count = 0
}
