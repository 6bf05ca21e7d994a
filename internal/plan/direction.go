package plan

//go:generate go tool stringer -type=Direction -linecomment -output=direction_string.go

// Direction is the conversion direction of a mapper function.
type Direction int

const (
	ToView   Direction = iota // toView
	FromView                  // fromView
)

// Directions lists both directions in rendering order.
var Directions = []Direction{ToView, FromView}
