package common

import "github.com/charmbracelet/x/cellbuf"

// ViewNode is the size and screen placement of a view.
type ViewNode struct {
	Width  int
	Height int
	Frame  cellbuf.Rectangle
}

func NewViewNode(width, height int) *ViewNode {
	return &ViewNode{Width: width, Height: height, Frame: cellbuf.Rect(0, 0, width, height)}
}

func (v *ViewNode) SetFrame(f cellbuf.Rectangle) {
	v.Frame = f
	v.Width = f.Dx()
	v.Height = f.Dy()
}

// SetSize resizes the view in place, keeping its origin.
func (v *ViewNode) SetSize(width, height int) {
	v.SetFrame(cellbuf.Rect(v.Frame.Min.X, v.Frame.Min.Y, max(width, 0), max(height, 0)))
}

// ToLocal converts screen coordinates to coordinates relative to the view.
func (v *ViewNode) ToLocal(x, y int) (int, int) {
	return x - v.Frame.Min.X, y - v.Frame.Min.Y
}
