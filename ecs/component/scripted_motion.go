package component

// ScriptedMotion drives an entity's Transform from a tengo script.
// Base is captured the first time the script runs.
type ScriptedMotion struct {
	Script  string
	Frame   int
	Base    Transform
	HasBase bool
}

var ScriptedMotionComponent = NewComponent[ScriptedMotion]()
