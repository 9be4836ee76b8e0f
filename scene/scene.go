// Package scene holds the CPU-side scene graph the visual systems build
// and the renderer draws. Nodes own vertex buffers sized to a fixed
// capacity; systems animate the buffers in place and the renderer draws
// only the active range each frame.
package scene

import (
	"github.com/lumamoss/cellscape/geom"
)

// NodeKind tags a node with the primitive the renderer should use.
type NodeKind uint8

const (
	KindTriangles NodeKind = iota // indexed triangle list
	KindPoints                    // point cloud, active range only
	KindRibbon                    // triangle strip with per-vertex alpha
	KindRing                      // flat ring, Params[0]=inner, Params[1]=outer
	KindLines                     // line list, pairs of vertices
	KindSphere                    // analytic sphere, Params[0]=radius
)

// Color is an RGBA color with 0-255 channels, matching raylib's layout
// without making the scene graph depend on it.
type Color struct {
	R, G, B, A uint8
}

// Node is one drawable unit: a transform plus a mesh. Systems keep
// pointers to their nodes and mutate them every tick; the renderer only
// reads.
type Node struct {
	Kind     NodeKind
	Position geom.Vec3
	Rotation float32 // around the surface normal, radians
	Scale    float32
	Visible  bool

	Tint    Color
	Opacity float32 // multiplied into Tint.A at draw time

	// Params carries kind-specific scalars (ring radii, sphere radius).
	Params [2]float32

	Mesh *Mesh

	released bool
}

// NewNode returns a visible node at the origin with unit scale.
func NewNode(kind NodeKind, mesh *Mesh) *Node {
	return &Node{
		Kind:    kind,
		Scale:   1,
		Visible: true,
		Opacity: 1,
		Tint:    Color{255, 255, 255, 255},
		Mesh:    mesh,
	}
}

// Release frees the node's buffers. Safe to call more than once; only
// the first call does work.
func (n *Node) Release() {
	if n.released {
		return
	}
	n.released = true
	if n.Mesh != nil {
		n.Mesh.Release()
	}
}

// Released reports whether Release has run.
func (n *Node) Released() bool {
	return n.released
}

// Scene is the container the renderer iterates. Single-threaded: the
// frame loop is cooperative, so no locking.
type Scene struct {
	nodes map[*Node]struct{}

	// Disposals counts Remove calls that released resources. Leak
	// checks in tests compare it against creations.
	Disposals int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[*Node]struct{})}
}

// Add registers a node for drawing. Adding the same node twice is a
// no-op.
func (s *Scene) Add(n *Node) {
	if n == nil {
		return
	}
	s.nodes[n] = struct{}{}
}

// Remove unregisters a node and synchronously releases its buffers.
// Idempotent: removing an absent node does nothing.
func (s *Scene) Remove(n *Node) {
	if n == nil {
		return
	}
	if _, ok := s.nodes[n]; !ok {
		return
	}
	delete(s.nodes, n)
	n.Release()
	s.Disposals++
}

// Len returns the number of registered nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Visit calls fn for every registered node.
func (s *Scene) Visit(fn func(*Node)) {
	for n := range s.nodes {
		fn(n)
	}
}

// ParticleCount sums the active point counts across all point-cloud
// nodes, for telemetry.
func (s *Scene) ParticleCount() int {
	total := 0
	for n := range s.nodes {
		if n.Kind == KindPoints && n.Mesh != nil {
			total += n.Mesh.Active
		}
	}
	return total
}

// Contains reports whether n is registered.
func (s *Scene) Contains(n *Node) bool {
	_, ok := s.nodes[n]
	return ok
}
