package vfx

import "github.com/lumamoss/cellscape/geom"

// Pool is the shared particle-pool primitive: SoA buffers allocated
// once at a hard maximum, with a live active count that grows and
// shrinks without touching the allocations. Only the first Active
// entries are simulated and drawn; entries beyond it are inert.
type Pool struct {
	Pos  []geom.Vec3
	Vel  []geom.Vec3
	Size []float32
	// Seed is a per-particle random phase/speed scalar assigned at
	// activation, used to desynchronize periodic motion.
	Seed []float32

	Active int
	Max    int
}

// NewPool allocates a pool with capacity max.
func NewPool(max int) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{
		Pos:  make([]geom.Vec3, max),
		Vel:  make([]geom.Vec3, max),
		Size: make([]float32, max),
		Seed: make([]float32, max),
		Max:  max,
	}
}

// InitFunc initializes one newly-activated particle slot.
type InitFunc func(i int, p *Pool)

// SetActive sets the live count to n, clamped to [0, Max]. Growth
// initializes exactly the newly-activated slots through init, so stale
// data from an earlier activation is never drawn. Shrinking changes no
// buffer contents. The buffers are never reallocated.
func (p *Pool) SetActive(n int, init InitFunc) {
	if n < 0 {
		n = 0
	}
	if n > p.Max {
		n = p.Max
	}
	if init != nil {
		for i := p.Active; i < n; i++ {
			init(i, p)
		}
	}
	p.Active = n
}
