package component

// Collectible marks an entity the player picks up by getting close to it.
type Collectible struct {
	Name   string
	BaseY  float64
	Phase  float64
	Script string
}

var CollectibleComponent = NewComponent[Collectible]()
