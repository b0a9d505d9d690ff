package component

// Island is one cell of the floating island grid.
type Island struct {
	Col int
	Row int
}

var IslandComponent = NewComponent[Island]()
