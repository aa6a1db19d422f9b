// Package measure implements the interactive distance and area tool that
// sits on top of a map: a Session holding placed points, an Overlay
// drawing them, and a Controller switching measurement mode on and off.
//
// The package never talks to a concrete map. Hosts implement Surface and
// hand it to NewController. None of the types here are safe for
// concurrent use; hosts deliver input events one at a time.
package measure

import "github.com/NERVsystems/mapmeasure/pkg/geo"

// Surface is the contract a host map fulfils for the measurement tool.
type Surface interface {
	// OnClick arms fn to receive every map click as a coordinate until
	// the returned disarm func is called.
	OnClick(fn func(geo.Location)) (disarm func())

	// SetPanEnabled toggles the map's pan-by-drag interaction.
	SetPanEnabled(enabled bool)

	// AddMarker draws a small circular marker at p.
	AddMarker(p geo.Location) Layer

	// AddPolyline draws a line through points in order.
	AddPolyline(points []geo.Location) Polyline

	// ShowPanel mounts the floating info panel with the given text.
	ShowPanel(content string) Panel

	// MountControls mounts the toggle/clear button pair.
	MountControls(h ControlHandlers) Controls
}

// Layer is a visual artifact owned by the overlay.
type Layer interface {
	Remove()
}

// Polyline is a drawn line whose vertices can be replaced.
type Polyline interface {
	Layer
	SetPoints(points []geo.Location)
}

// Panel is the floating statistics panel.
type Panel interface {
	Layer
	SetContent(content string)
}

// Controls is the mounted toggle/clear affordance.
type Controls interface {
	Layer
	SetActive(active bool)
	SetClearEnabled(enabled bool)
}

// ControlHandlers are invoked when the user presses a control.
type ControlHandlers struct {
	Toggle func()
	Clear  func()
}
