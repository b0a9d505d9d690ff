package component

// Input stores the move intent of an entity. Each axis is -1, 0 or 1 and only
// changes on key edges.
type Input struct {
	MoveX float64
	MoveZ float64
}

var InputComponent = NewComponent[Input]()
