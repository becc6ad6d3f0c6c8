package track

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/race"
)

func TestBuiltinIsRaceable(t *testing.T) {
	tr := Builtin()
	require.NoError(t, tr.Validate())
	assert.Equal(t, "oval", tr.Name)
	assert.Equal(t, BuiltinWidth*race.TileSize, tr.Terrain.PixelWidth())
	assert.Equal(t, BuiltinHeight*race.TileSize, tr.Terrain.PixelHeight())
	assert.Len(t, tr.Gates, 4)

	for i, p := range tr.Waypoints {
		assert.False(t, tr.Terrain.IsColliding(p.X, p.Y), "waypoint %d", i)
	}
	for i, g := range tr.Gates {
		x, y := g.Center()
		assert.False(t, tr.Terrain.IsColliding(x, y), "gate %d", i)
	}
	for i, s := range tr.Grid {
		assert.False(t, tr.Terrain.IsColliding(s.X, s.Y), "slot %d", i)
		assert.Equal(t, uint8(64), s.Angle)
	}
}

func TestBuiltinTerrain(t *testing.T) {
	tr := Builtin().Terrain
	tests := []struct {
		name string
		x, y int
		want race.TerrainClass
	}{
		{"outside the outer wall", 20, 20, race.ClassWall},
		{"infield", 256, 192, race.ClassWall},
		{"top straight", 150, 64, race.ClassRoad},
		{"inside corner verge", 100, 100, race.ClassRoad},
		{"grass verge", 150, 97, race.ClassGrass},
		{"finish line", 256, 30, race.ClassFinish},
		{"finish across the verge", 256, 100, race.ClassFinish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.ClassAt(tt.x, tt.y))
		})
	}
}

func TestRasterizeSharesSilhouettes(t *testing.T) {
	// Left half of every tile is wall: one silhouette serves them all.
	tr := Rasterize(4, 4, func(x, y int) race.TerrainClass {
		if x%race.TileSize < 4 {
			return race.ClassWall
		}
		return race.ClassRoad
	})
	for _, id := range tr.Tiles {
		assert.Equal(t, FirstMaskTile, id)
	}
	assert.Equal(t, [8]uint8{0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0}, tr.Masks[FirstMaskTile])
	assert.Equal(t, race.ClassWall, tr.ClassAt(3, 3))
	assert.Equal(t, race.ClassRoad, tr.ClassAt(4, 3))
}

func TestRasterizeUniformTiles(t *testing.T) {
	tr := Rasterize(3, 1, func(x, y int) race.TerrainClass {
		return race.TerrainClass(x / race.TileSize)
	})
	assert.Equal(t, []uint8{TileRoad, TileGrass, TileWall}, tr.Tiles)
}

func TestRasterizeRunsOutOfSilhouettes(t *testing.T) {
	// Every tile carries a wall pixel or two in its own pattern, more
	// patterns than the ID space holds.
	w, h := 32, 10
	tr := Rasterize(w, h, func(x, y int) race.TerrainClass {
		i := (y/race.TileSize)*w + x/race.TileSize
		p := (y%race.TileSize)*race.TileSize + x%race.TileSize
		if p == i%64 || p == 63-i/64 {
			return race.ClassWall
		}
		return race.ClassRoad
	})
	require.NoError(t, tr.Validate())

	fallback := 0
	var top uint8
	for _, id := range tr.Tiles {
		if id == TileRoad {
			fallback++
		}
		top = max(top, id)
	}
	assert.Positive(t, fallback, "overflow tiles use their majority class")
	assert.Equal(t, FinishFirst-1, top)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Builtin()
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Waypoints, got.Waypoints)
	assert.Equal(t, want.Gates, got.Gates)
	assert.Equal(t, want.Grid, got.Grid)
	assert.Equal(t, want.Terrain, got.Terrain)
}

func TestOpen(t *testing.T) {
	tr, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, "oval", tr.Name)

	tr, err = Open(BuiltinName)
	require.NoError(t, err)
	assert.Equal(t, "oval", tr.Name)

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

// writeMinimal lays out a 4x4 all-road track without the optional files.
func writeMinimal(t *testing.T, dir string) {
	t.Helper()
	manifest := `{
		"width": 4, "height": 4,
		"gates": [{"x0": 0, "y0": 0, "x1": 3, "y1": 0}, {"x0": 0, "y0": 3, "x1": 3, "y1": 3}],
		"grid": [{"x": 16, "y": 16, "angle": 128}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MapFile), make([]byte, 16), 0o644))
	var wp bytes.Buffer
	require.NoError(t, WriteWaypoints(&wp, []race.Point{{X: 8, Y: 8}, {X: 24, Y: 24}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WaypointsFile), wp.Bytes(), 0o644))
}

func TestLoadMinimal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tiny")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeMinimal(t, dir)

	tr, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "tiny", tr.Name, "name falls back to the directory")
	assert.Equal(t, []race.GridSlot{{X: 16, Y: 16, Angle: 128}}, tr.Grid)
	assert.Equal(t, race.ClassWall, tr.Terrain.ClassAt(0, 0), "no properties file: every class is wall")
	assert.Equal(t, FinishFirst, tr.Terrain.FinishFirst)
	assert.Equal(t, FinishLast, tr.Terrain.FinishLast)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, dir string)
		check  func(t *testing.T, err error)
	}{
		{
			"short map",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, MapFile), make([]byte, 15), 0o644))
			},
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMap) },
		},
		{
			"no waypoints",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, WaypointsFile), []byte{0, 0}, 0o644))
			},
			func(t *testing.T, err error) { assert.ErrorIs(t, err, race.ErrNoWaypoints) },
		},
		{
			"truncated waypoints",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, WaypointsFile), []byte{3, 0, 1, 0, 2, 0}, 0o644))
			},
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMap) },
		},
		{
			"ragged collision table",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, CollisionFile), make([]byte, 12), 0o644))
			},
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMap) },
		},
		{
			"unknown class",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, PropertiesFile), []byte{0, 9}, 0o644))
			},
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMap) },
		},
		{
			"malformed manifest",
			func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"width": `), 0o644))
			},
			func(t *testing.T, err error) { assert.Contains(t, err.Error(), "error reading track manifest") },
		},
		{
			"single gate",
			func(t *testing.T, dir string) {
				m := `{"width": 4, "height": 4, "gates": [{"x0": 0, "y0": 0, "x1": 3, "y1": 0}], "grid": [{"x": 16, "y": 16}]}`
				require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(m), 0o644))
			},
			func(t *testing.T, err error) { assert.Contains(t, err.Error(), "finish gate") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeMinimal(t, dir)
			tt.mutate(t, dir)
			_, err := Load(dir)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestWaypointsEncoding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWaypoints(&buf, []race.Point{{X: 256, Y: -2}}))
	assert.Equal(t, []byte{1, 0, 0, 1, 0xFE, 0xFF}, buf.Bytes())

	wps, err := ReadWaypoints(&buf)
	require.NoError(t, err)
	assert.Equal(t, []race.Point{{X: 256, Y: -2}}, wps)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteWaypointsErrors(t *testing.T) {
	err := WriteWaypoints(failingWriter{}, []race.Point{{X: 8, Y: 8}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	var buf bytes.Buffer
	err = WriteWaypoints(&buf, []race.Point{{X: 8, Y: 8}, {X: 40000, Y: 8}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waypoint 1")
	assert.Zero(t, buf.Len())

	err = WriteWaypoints(&buf, make([]race.Point, 0x10000))
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
