package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/measure"
	"github.com/NERVsystems/mapmeasure/pkg/osm"
	"github.com/NERVsystems/mapmeasure/pkg/surface"
)

// Geocoder resolves a place name to a location.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (osm.Place, error)
}

// MeasureTools implements the measurement tool handlers.
type MeasureTools struct {
	workspace *Workspace
	geocoder  Geocoder
	logger    *slog.Logger
}

// NewMeasureTools returns handlers operating on workspace. geocoder may be
// nil, in which case measure_click_place reports an error.
func NewMeasureTools(workspace *Workspace, geocoder Geocoder, logger *slog.Logger) *MeasureTools {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeasureTools{workspace: workspace, geocoder: geocoder, logger: logger}
}

// ClickOutcome describes what happened to a click.
type ClickOutcome struct {
	Location    geo.Location `json:"location"`
	Place       string       `json:"place,omitempty"`
	Intercepted bool         `json:"intercepted"`
	Message     string       `json:"message,omitempty"`
}

// StatusOutput is returned by every session tool.
type StatusOutput struct {
	SessionID string `json:"session_id"`
	measure.Snapshot
	DistanceM  int64                `json:"distance_m"`
	AreaHa     float64              `json:"area_ha"`
	Polyline   string               `json:"encoded_polyline,omitempty"`
	PanEnabled bool                 `json:"pan_enabled"`
	Controls   surface.ControlState `json:"controls"`
	Click      *ClickOutcome        `json:"click,omitempty"`
}

func status(s *Session, h *surface.Headless, c *measure.Controller) StatusOutput {
	snap := c.Snapshot()
	return StatusOutput{
		SessionID:  s.ID,
		Snapshot:   snap,
		DistanceM:  snap.Stats.DistanceMeters(),
		AreaHa:     snap.Stats.AreaHectares(),
		Polyline:   geo.EncodePolyline(snap.Points),
		PanEnabled: h.PanEnabled(),
		Controls:   h.Controls(),
	}
}

func (t *MeasureTools) session(req mcp.CallToolRequest) (*Session, *mcp.CallToolResult) {
	id := mcp.ParseString(req, "session_id", "")
	if id == "" {
		return nil, ErrorResponse("session_id must not be empty")
	}
	s, ok := t.workspace.Get(id)
	if !ok {
		return nil, ErrorWithGuidance(SessionNotFound(id))
	}
	return s, nil
}

// StartSessionTool returns the tool definition for opening a session.
func StartSessionTool() mcp.Tool {
	return mcp.NewTool("measure_start_session",
		mcp.WithDescription("Open a new distance/area measurement session on a blank map"),
		mcp.WithBoolean("active",
			mcp.Description("Start with measurement mode already on (default false)"),
		),
	)
}

// HandleStartSession opens a session.
func (t *MeasureTools) HandleStartSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := t.workspace.Start()
	active := mcp.ParseBoolean(req, "active", false)

	var out StatusOutput
	s.Do(func(h *surface.Headless, c *measure.Controller) {
		if active {
			c.Toggle()
		}
		out = status(s, h, c)
	})
	t.logger.Info("measurement session started", "tool", "measure_start_session", "session_id", s.ID)
	return JSONResponse(out)
}

// ToggleTool returns the tool definition for switching measurement mode.
func ToggleTool() mcp.Tool {
	return mcp.NewTool("measure_toggle",
		mcp.WithDescription("Switch measurement mode on or off. Switching off keeps the placed points"),
		sessionIDOption(),
	)
}

// HandleToggle presses the toggle control.
func (t *MeasureTools) HandleToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	var out StatusOutput
	s.Do(func(h *surface.Headless, c *measure.Controller) {
		h.PressToggle()
		out = status(s, h, c)
	})
	return JSONResponse(out)
}

// ClickTool returns the tool definition for clicking a coordinate.
func ClickTool() mcp.Tool {
	return mcp.NewTool("measure_click",
		mcp.WithDescription("Click the map at a coordinate. While measurement mode is on the click adds a point"),
		sessionIDOption(),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude in decimal degrees"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude in decimal degrees"),
		),
	)
}

// HandleClick clicks a coordinate.
func (t *MeasureTools) HandleClick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	args := req.Params.Arguments
	if args["latitude"] == nil || args["longitude"] == nil {
		return ErrorResponse("latitude and longitude are required"), nil
	}
	lat, err := parseCoordinate(args["latitude"])
	if err != nil {
		return ErrorWithGuidance(CoordinateError("latitude", err)), nil
	}
	lon, err := parseCoordinate(args["longitude"])
	if err != nil {
		return ErrorWithGuidance(CoordinateError("longitude", err)), nil
	}
	if err := geo.ValidateCoords(lat, lon); err != nil {
		return ErrorWithGuidance(ValidationError(lat, lon)), nil
	}

	return JSONResponse(t.click(s, geo.Location{Latitude: lat, Longitude: lon}, ""))
}

// parseCoordinate converts a JSON argument to degrees. Numbers and numeric
// strings are accepted; booleans and anything unparsable are not.
func parseCoordinate(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := v.(type) {
	case bool:
		return 0, fmt.Errorf("%v is not a number", v)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", fmt.Sprint(v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return f, nil
}

// ClickPlaceTool returns the tool definition for clicking a named place.
func ClickPlaceTool() mcp.Tool {
	return mcp.NewTool("measure_click_place",
		mcp.WithDescription("Geocode a place name with OpenStreetMap Nominatim and click the map there"),
		sessionIDOption(),
		mcp.WithString("place",
			mcp.Required(),
			mcp.Description("Place name or address, e.g. \"Ferry Building, San Francisco, USA\""),
		),
	)
}

// HandleClickPlace geocodes a place and clicks it.
func (t *MeasureTools) HandleClickPlace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := t.logger.With("tool", "measure_click_place")

	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	query := mcp.ParseString(req, "place", "")
	if query == "" {
		return ErrorResponse("place must not be empty"), nil
	}
	if t.geocoder == nil {
		return ErrorResponse("geocoding is not configured"), nil
	}

	place, err := t.geocoder.Geocode(ctx, query)
	if err != nil {
		logger.Error("failed to geocode place", "place", query, "error", err)
		return ErrorWithGuidance(geocodeError(err)), nil
	}

	return JSONResponse(t.click(s, place.Location, place.Name))
}

func geocodeError(err error) *APIError {
	var se *osm.StatusError
	switch {
	case errors.Is(err, osm.ErrNoResults):
		return NewAPIError("Nominatim", http.StatusNotFound, "No results found for the place", GuidanceNominatimNoResults)
	case errors.As(err, &se):
		guidance := GuidanceNominatimGeneral
		if se.StatusCode == http.StatusTooManyRequests {
			guidance = GuidanceNominatimRateLimit
		}
		return NewAPIError("Nominatim", se.StatusCode, err.Error(), guidance)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewAPIError("Nominatim", http.StatusGatewayTimeout, err.Error(), "")
	default:
		return NewAPIError("Nominatim", http.StatusBadGateway, err.Error(), GuidanceNominatimGeneral)
	}
}

func (t *MeasureTools) click(s *Session, p geo.Location, place string) StatusOutput {
	var out StatusOutput
	s.Do(func(h *surface.Headless, c *measure.Controller) {
		outcome := &ClickOutcome{Location: p, Place: place, Intercepted: h.Click(p)}
		if !outcome.Intercepted {
			outcome.Message = "measurement mode is off; the click passed through to the map"
		}
		out = status(s, h, c)
		out.Click = outcome
	})
	return out
}

// ClearTool returns the tool definition for clearing a measurement.
func ClearTool() mcp.Tool {
	return mcp.NewTool("measure_clear",
		mcp.WithDescription("Remove all points, switch measurement mode off and re-enable panning"),
		sessionIDOption(),
	)
}

// HandleClear clears the measurement. It works whether or not the clear
// button would be enabled.
func (t *MeasureTools) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	var out StatusOutput
	s.Do(func(h *surface.Headless, c *measure.Controller) {
		c.Clear()
		out = status(s, h, c)
	})
	return JSONResponse(out)
}

// StatusTool returns the tool definition for reading a measurement.
func StatusTool() mcp.Tool {
	return mcp.NewTool("measure_status",
		mcp.WithDescription("Read the current points, distance, area and info panel of a session"),
		sessionIDOption(),
	)
}

// HandleStatus reports the session state.
func (t *MeasureTools) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	var out StatusOutput
	s.Do(func(h *surface.Headless, c *measure.Controller) {
		out = status(s, h, c)
	})
	return JSONResponse(out)
}

// ExportTool returns the tool definition for GeoJSON export.
func ExportTool() mcp.Tool {
	return mcp.NewTool("measure_export",
		mcp.WithDescription("Export the measurement as a GeoJSON FeatureCollection (points, path, area polygon)"),
		sessionIDOption(),
	)
}

// HandleExport returns the measurement as GeoJSON.
func (t *MeasureTools) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := t.logger.With("tool", "measure_export")

	s, errResult := t.session(req)
	if errResult != nil {
		return errResult, nil
	}

	var (
		data []byte
		err  error
	)
	s.Do(func(_ *surface.Headless, c *measure.Controller) {
		data, err = c.Snapshot().GeoJSON()
	})
	if err != nil {
		logger.Error("failed to export measurement", "session_id", s.ID, "error", err)
		return ErrorResponse("Failed to generate GeoJSON"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// CloseSessionTool returns the tool definition for closing a session.
func CloseSessionTool() mcp.Tool {
	return mcp.NewTool("measure_close_session",
		mcp.WithDescription("Close a measurement session and discard its points"),
		sessionIDOption(),
	)
}

// HandleCloseSession closes a session.
func (t *MeasureTools) HandleCloseSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(req, "session_id", "")
	if !t.workspace.Close(id) {
		return ErrorWithGuidance(SessionNotFound(id)), nil
	}
	return JSONResponse(map[string]interface{}{"session_id": id, "closed": true})
}
