// Command measurereplay replays a path through the measurement tool on a
// headless map and prints the resulting info panel.
//
//	measurereplay -polyline '_p~iF~ps|U_ulLnnqC_mqNvxq`@'
//	measurereplay 37.7749,-122.4194 37.8044,-122.2712 37.8715,-122.2730
//	measurereplay -geojson < points.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/measure"
	"github.com/NERVsystems/mapmeasure/pkg/surface"
)

func main() {
	polyline := flag.String("polyline", "", "Polyline5-encoded path to replay")
	asGeoJSON := flag.Bool("geojson", false, "Print the measurement as GeoJSON instead of the panel")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	points, err := readPoints(*polyline, flag.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "measurereplay:", err)
		os.Exit(2)
	}

	out, err := replay(points, *asGeoJSON, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "measurereplay:", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// replay toggles measurement on, clicks every point and renders the result.
func replay(points []geo.Location, asGeoJSON bool, logger *slog.Logger) (string, error) {
	h := surface.NewHeadless(logger)
	c := measure.NewController(h, measure.WithLogger(logger))
	defer c.Close()

	c.Toggle()
	for _, p := range points {
		h.Click(p)
	}

	if asGeoJSON {
		data, err := c.Snapshot().GeoJSON()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	panel, ok := h.Panel()
	if !ok {
		return measure.FormatPanel(c.Session().Stats()), nil
	}
	return panel, nil
}

// readPoints takes the path from the polyline flag, the positional
// "lat,lon" arguments or stdin, in that order of preference.
func readPoints(polyline string, args []string, stdin io.Reader) ([]geo.Location, error) {
	if polyline != "" {
		points, err := geo.DecodePolyline(polyline)
		if err != nil {
			return nil, fmt.Errorf("decode polyline: %w", err)
		}
		return points, nil
	}
	if len(args) > 0 {
		return parsePoints(args)
	}

	var lines []string
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return parsePoints(lines)
}

func parsePoints(fields []string) ([]geo.Location, error) {
	points := make([]geo.Location, 0, len(fields))
	for _, f := range fields {
		latStr, lonStr, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want lat,lon", f)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		if err := geo.ValidateCoords(lat, lon); err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		points = append(points, geo.Location{Latitude: lat, Longitude: lon})
	}
	return points, nil
}
