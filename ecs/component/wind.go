package component

import "github.com/go-gl/mathgl/mgl64"

// Wind is the global wind state. Timestamps are frame milliseconds.
type Wind struct {
	Enabled    bool
	Vector     mgl64.Vec3
	Strength   float64
	NextChange float64
	Status     string

	MinStrength     float64
	StrengthRange   float64
	MinInterval     float64
	IntervalJitter  float64
	IndicatorHeight float64
	LengthScale     float64
	GroundedSpeed   float64
}

var WindComponent = NewComponent[Wind]()

// WindIndicator is what the renderer draws as the wind arrow.
type WindIndicator struct {
	Visible   bool
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Length    float64
}

var WindIndicatorComponent = NewComponent[WindIndicator]()
