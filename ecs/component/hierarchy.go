package component

// Parent links an entity's Transform to another entity's frame.
// Entity holds the raw ecs.Entity handle.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
