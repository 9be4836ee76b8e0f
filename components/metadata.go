package components

// NetID carries the stable externally-meaningful string id of an
// entity. Actor maps in the effects layer are keyed by this id, not by
// the ECS entity handle, so ids survive entity recycling.
type NetID struct {
	ID string
}

// MultiForm marks a player entity that has evolved into the seven-part
// form: one center plus six ring nuclei, each with its own trail.
type MultiForm struct{}

// Category tags. Filters in the world view select entities by these.
type (
	// TagPlayer marks player organisms.
	TagPlayer struct{}
	// TagSwarm marks enemy swarms.
	TagSwarm struct{}
	// TagTree marks jungle trees.
	TagTree struct{}
)
