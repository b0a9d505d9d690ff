package component

// Clock is the per-frame time written before systems run.
type Clock struct {
	Now   float64
	Delta float64
	Frame uint64
}

var ClockComponent = NewComponent[Clock]()
