package layers

// Option tunes a layer as it is added. Options that are not passed keep
// their defaults.
type Option func(*options)

type options struct {
	enabled     *bool
	pickEnabled *bool
	temporal    bool
	detailHint  *float64
	opacity     *float64
	hideInMenu  bool
}

func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = &enabled }
}

func WithPickEnabled(pickEnabled bool) Option {
	return func(o *options) { o.pickEnabled = &pickEnabled }
}

// WithDetailHint sets the level-of-detail bias passed to tiled imagery.
func WithDetailHint(hint float64) Option {
	return func(o *options) { o.detailHint = &hint }
}

// WithOpacity sets the layer opacity. Zero is a valid, fully transparent value.
func WithOpacity(opacity float64) Option {
	return func(o *options) { o.opacity = &opacity }
}

// Temporal marks a layer for periodic refresh.
func Temporal() Option {
	return func(o *options) { o.temporal = true }
}

// HiddenInMenu keeps the layer out of the layer menu.
func HiddenInMenu() Option {
	return func(o *options) { o.hideInMenu = true }
}

func collectOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// forcedOn is what background and widget layers get, whatever the caller asked.
var forcedOn = []Option{WithEnabled(true), HiddenInMenu()}

func applyOptions(l *Layer, category Category, o options) {
	l.category = category

	l.enabled = true
	if o.enabled != nil {
		l.enabled = *o.enabled
	}
	l.pickEnabled = true
	if o.pickEnabled != nil {
		l.pickEnabled = *o.pickEnabled
	}

	l.temporal = o.temporal

	if o.detailHint != nil {
		l.detailHint = *o.detailHint
	}
	if o.opacity != nil {
		l.opacity = min(max(*o.opacity, 0), 1)
	}

	l.showInMenu = !o.hideInMenu

	l.enabledBinding.set(l.enabled)
	l.showInMenuBinding.set(l.showInMenu)
}
