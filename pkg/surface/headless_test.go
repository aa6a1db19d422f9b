package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/measure"
	"github.com/NERVsystems/mapmeasure/pkg/testutil"
)

func TestHeadlessClickListener(t *testing.T) {
	h := NewHeadless(testutil.DiscardLogger())
	p := geo.Location{Latitude: 1, Longitude: 2}

	assert.False(t, h.Click(p))

	var got []geo.Location
	disarm := h.OnClick(func(l geo.Location) { got = append(got, l) })
	assert.True(t, h.ClickArmed())
	assert.True(t, h.Click(p))
	assert.Equal(t, []geo.Location{p}, got)

	disarm()
	assert.False(t, h.ClickArmed())
	assert.False(t, h.Click(p))
	assert.Len(t, got, 1)
}

func TestHeadlessStaleDisarmKeepsNewListener(t *testing.T) {
	h := NewHeadless(nil)
	first := h.OnClick(func(geo.Location) {})
	h.OnClick(func(geo.Location) {})

	first()
	assert.True(t, h.ClickArmed(), "disarming a replaced listener must not remove the current one")
}

func TestHeadlessLayers(t *testing.T) {
	h := NewHeadless(nil)
	a := geo.Location{Latitude: 1, Longitude: 1}
	b := geo.Location{Latitude: 2, Longitude: 2}

	ma := h.AddMarker(a)
	h.AddMarker(b)
	assert.Equal(t, []geo.Location{a, b}, h.Markers())
	ma.Remove()
	assert.Equal(t, []geo.Location{b}, h.Markers())

	line := h.AddPolyline([]geo.Location{a})
	line.SetPoints([]geo.Location{a, b})
	pts, ok := h.Line()
	require.True(t, ok)
	assert.Equal(t, []geo.Location{a, b}, pts)
	line.Remove()
	_, ok = h.Line()
	assert.False(t, ok)

	panel := h.ShowPanel("Points: 1")
	panel.SetContent("Points: 2")
	text, ok := h.Panel()
	require.True(t, ok)
	assert.Equal(t, "Points: 2", text)
	panel.Remove()
	_, ok = h.Panel()
	assert.False(t, ok)
}

func TestHeadlessControls(t *testing.T) {
	h := NewHeadless(nil)
	assert.False(t, h.PressToggle())
	assert.False(t, h.PressClear())

	toggles, clears := 0, 0
	c := h.MountControls(measure.ControlHandlers{
		Toggle: func() { toggles++ },
		Clear:  func() { clears++ },
	})

	assert.True(t, h.PressToggle())
	assert.False(t, h.PressClear(), "clear starts disabled")

	c.SetClearEnabled(true)
	c.SetActive(true)
	assert.Equal(t, ControlState{Mounted: true, Active: true, ClearEnabled: true}, h.Controls())
	assert.True(t, h.PressClear())
	assert.Equal(t, 1, toggles)
	assert.Equal(t, 1, clears)

	c.Remove()
	assert.Equal(t, ControlState{}, h.Controls())
}

func TestHeadlessPan(t *testing.T) {
	h := NewHeadless(nil)
	assert.True(t, h.PanEnabled())
	h.SetPanEnabled(false)
	assert.False(t, h.PanEnabled())
}
