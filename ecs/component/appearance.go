package component

import "image/color"

type Appearance struct {
	Color color.NRGBA
}

var AppearanceComponent = NewComponent[Appearance]()
