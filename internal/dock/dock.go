// Package dock finds application icons in whatever dock the host provides and
// toggles their urgent marker.
package dock

// UrgentStyle is the style class applied to an icon while its application
// has unresolved attention demands.
const UrgentStyle = "urgent"

// Icon is a dock entry for one application.
type Icon interface {
	// AppID returns the owning application's identifier, or "" if none.
	AppID() string
	AddStyleClass(name string)
	RemoveStyleClass(name string)
}

// IconLister is a dock that can enumerate its application icons directly.
type IconLister interface {
	AppIcons() []Icon
}

// Item is one child of a Container dock.
type Item interface {
	// Icon returns the application icon carried by the item, or nil for
	// separators and other decorations.
	Icon() Icon
	AnimatingOut() bool
}

// Container is the default dock shape: a box of children, only some of which
// are application icons.
type Container interface {
	Children() []Item
}

// AppIcons returns the application icons of d. IconLister is preferred over
// Container; any other value, including nil, yields no icons.
func AppIcons(d any) []Icon {
	switch d := d.(type) {
	case IconLister:
		return d.AppIcons()
	case Container:
		var icons []Icon
		for _, item := range d.Children() {
			if item == nil || item.AnimatingOut() {
				continue
			}
			if icon := item.Icon(); icon != nil {
				icons = append(icons, icon)
			}
		}
		return icons
	default:
		return nil
	}
}

// FindIcon returns the first icon in d owned by appID, or nil.
func FindIcon(d any, appID string) Icon {
	if appID == "" {
		return nil
	}
	for _, icon := range AppIcons(d) {
		if icon.AppID() == appID {
			return icon
		}
	}
	return nil
}
