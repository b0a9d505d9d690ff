package component

// RunTimer tracks the current run. All values are milliseconds.
type RunTimer struct {
	Start   float64
	Best    float64
	Elapsed float64
}

var RunTimerComponent = NewComponent[RunTimer]()
