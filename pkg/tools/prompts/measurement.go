// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMeasurementPrompts registers the measurement prompts with the MCP server
func RegisterMeasurementPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("measurement",
		mcp.WithPromptDescription("Instructions for measuring distances and areas with the measure_* tools"),
	), MeasurementPromptHandler)
}

// MeasurementPromptHandler returns the main prompt for the measurement tools
func MeasurementPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemPrompt := `You have access to a map measurement tool. Use it like this:

1. Call measure_start_session and keep the returned session_id
2. Call measure_toggle to switch measurement mode on (panning is disabled while it is on)
3. Add points in order with measure_click (latitude, longitude in decimal degrees)
   or measure_click_place (a place name, geocoded with OpenStreetMap)
4. Read distance_km and, from three points on, area_km2 from every response
5. measure_toggle again switches the mode off but keeps the points
6. measure_clear removes all points; measure_close_session ends the session

NOTES:
- The distance is the great-circle length along the points in click order
- The area treats the points as a closed polygon (last point back to the first)
- The area is a planar approximation and is only reliable for small regions;
  it is not corrected for high latitudes or the antimeridian
- Clicks made while measurement mode is off are passed through and not recorded
- measure_export returns the points, path and polygon as GeoJSON`

	return mcp.NewGetPromptResult(
		"Measurement Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(systemPrompt),
			),
		},
	), nil
}
