package components

// Tree holds the parameters a jungle tree was generated with.
type Tree struct {
	Radius  float32 // trunk base radius
	Height  float32
	Variant uint32 // seed for deterministic per-tree shape variation
}
