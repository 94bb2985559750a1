package layers

import (
	"fmt"
	"strings"
)

// Category decides where a layer sits in the render order and whether the
// layer menu may offer it. The declaration order is the render order.
type Category int

const (
	// Background layers are always enabled and never shown in the layer menu.
	Background Category = iota
	// Base layers are opaque imagery, usually shown one at a time.
	Base
	// Overlay layers may be translucent or sparse and stack on the base.
	Overlay
	// Data layers hold shapes and markers.
	Data
	// Widget layers are fixed on-screen controls; always on, never in the menu.
	Widget
)

// Categories lists every category in render order.
var Categories = []Category{Background, Base, Overlay, Data, Widget}

var categoryNames = [...]string{"Background", "Base", "Overlay", "Data", "Widget"}

func (c Category) String() string {
	if c < Background || c > Widget {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory matches a category label case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer category %q", s)
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
