package component

type CubeTag struct{}

var CubeTagComponent = NewComponent[CubeTag]()

type TurntableTag struct{}

var TurntableTagComponent = NewComponent[TurntableTag]()
