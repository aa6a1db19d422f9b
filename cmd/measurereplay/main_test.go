package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/mapmeasure/pkg/testutil"
)

func TestReadPoints(t *testing.T) {
	t.Run("polyline wins", func(t *testing.T) {
		pts, err := readPoints("_p~iF~ps|U_ulLnnqC", []string{"1,1"}, strings.NewReader(""))
		require.NoError(t, err)
		assert.Len(t, pts, 2)
	})

	t.Run("arguments", func(t *testing.T) {
		pts, err := readPoints("", []string{"37.7749,-122.4194", " 37.8044 , -122.2712"}, nil)
		require.NoError(t, err)
		require.Len(t, pts, 2)
		assert.Equal(t, 37.8044, pts[1].Latitude)
	})

	t.Run("stdin skips comments", func(t *testing.T) {
		in := "# path\n37.7749,-122.4194\n\n37.8044,-122.2712\n"
		pts, err := readPoints("", nil, strings.NewReader(in))
		require.NoError(t, err)
		assert.Len(t, pts, 2)
	})

	t.Run("bad polyline", func(t *testing.T) {
		for _, enc := range []string{"!!!!!!!!", "_p~iF", "_p~iF~ps|"} {
			_, err := readPoints(enc, nil, nil)
			assert.Error(t, err, enc)
		}
	})

	t.Run("bad input", func(t *testing.T) {
		for _, arg := range []string{"37.7", "x,1", "1,y", "95,0"} {
			_, err := readPoints("", []string{arg}, nil)
			assert.Error(t, err, arg)
		}
	})
}

func TestReplay(t *testing.T) {
	pts, err := parsePoints([]string{"0,0", "0,1", "1,0"})
	require.NoError(t, err)

	out, err := replay(pts, false, testutil.DiscardLogger())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Points: 3\nDistance: "))
	assert.Contains(t, out, "Area: ")

	out, err = replay(nil, false, testutil.DiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Points: 0", out)

	out, err = replay(pts, true, testutil.DiscardLogger())
	require.NoError(t, err)
	assert.Contains(t, out, `"FeatureCollection"`)
}
