package figure

import "image/color"

// Stroke describes how an outline is painted.
type Stroke struct {
	Width float64    `json:"width"`
	Color color.RGBA `json:"color"`
}

// DefaultStroke is the stroke applied to freshly created figures.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, Color: color.RGBA{R: 255, G: 255, B: 0, A: 255}}
}

// DefaultFill is the fill applied to freshly created rectangles.
func DefaultFill() color.RGBA {
	return color.RGBA{R: 100, G: 100, B: 50, A: 50}
}
