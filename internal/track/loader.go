package track

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"racer/internal/race"
)

// Files making up a track directory.
const (
	ManifestFile   = "track.json"
	MapFile        = "map.bin"
	PropertiesFile = "properties.bin"
	CollisionFile  = "collision.bin"
	WaypointsFile  = "waypoints.bin"
)

// BuiltinName selects the procedural oval instead of a directory.
const BuiltinName = "builtin"

var ErrBadMap = errors.New("bad track map")

type gateSpec struct {
	X0 int `json:"x0" mapstructure:"x0"`
	Y0 int `json:"y0" mapstructure:"y0"`
	X1 int `json:"x1" mapstructure:"x1"`
	Y1 int `json:"y1" mapstructure:"y1"`
}

type slotSpec struct {
	X     int   `json:"x" mapstructure:"x"`
	Y     int   `json:"y" mapstructure:"y"`
	Angle uint8 `json:"angle" mapstructure:"angle"`
}

// Manifest is the JSON half of a track: everything that is not a byte
// table.
type Manifest struct {
	Name        string     `mapstructure:"name"`
	Width       int        `mapstructure:"width"`
	Height      int        `mapstructure:"height"`
	FinishFirst int        `mapstructure:"finishFirst"`
	FinishLast  int        `mapstructure:"finishLast"`
	Gates       []gateSpec `mapstructure:"gates"`
	Grid        []slotSpec `mapstructure:"grid"`
}

// Open returns the built-in oval for an empty name or BuiltinName, and
// loads the track directory otherwise.
func Open(name string) (*race.Track, error) {
	if name == "" || name == BuiltinName {
		return Builtin(), nil
	}
	return Load(name)
}

// Load reads a track directory. properties.bin and collision.bin may be
// absent: missing classes read as wall and missing masks as empty.
func Load(dir string) (*race.Track, error) {
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadMap, m.Width, m.Height)
	}
	tiles, err := os.ReadFile(filepath.Join(dir, MapFile))
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	if len(tiles) != m.Width*m.Height {
		return nil, fmt.Errorf("%w: %s has %d tiles, want %d", ErrBadMap, MapFile, len(tiles), m.Width*m.Height)
	}

	t := race.NewTerrain(m.Width, m.Height)
	copy(t.Tiles, tiles)
	if !byteRange(m.FinishFirst) || !byteRange(m.FinishLast) {
		return nil, fmt.Errorf("%w: finish range %d-%d", ErrBadMap, m.FinishFirst, m.FinishLast)
	}
	t.FinishFirst, t.FinishLast = uint8(m.FinishFirst), uint8(m.FinishLast)

	props, err := readOptional(filepath.Join(dir, PropertiesFile))
	if err != nil {
		return nil, err
	}
	if len(props) > len(t.Classes) {
		return nil, fmt.Errorf("%w: %s has %d entries", ErrBadMap, PropertiesFile, len(props))
	}
	for id, c := range props {
		if c > uint8(race.ClassFinish) {
			return nil, fmt.Errorf("%w: tile %d has class %d", ErrBadMap, id, c)
		}
		t.Classes[id] = race.TerrainClass(c)
	}

	masks, err := readOptional(filepath.Join(dir, CollisionFile))
	if err != nil {
		return nil, err
	}
	if len(masks)%race.TileSize != 0 || len(masks) > len(t.Masks)*race.TileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrBadMap, CollisionFile, len(masks))
	}
	for i := 0; i < len(masks); i += race.TileSize {
		copy(t.Masks[i/race.TileSize][:], masks[i:i+race.TileSize])
	}

	f, err := os.Open(filepath.Join(dir, WaypointsFile))
	if err != nil {
		return nil, fmt.Errorf("reading waypoints: %w", err)
	}
	defer f.Close()
	wps, err := ReadWaypoints(f)
	if err != nil {
		return nil, err
	}

	tr := &race.Track{
		Name:      m.Name,
		Terrain:   t,
		Waypoints: wps,
	}
	for _, g := range m.Gates {
		tr.Gates = append(tr.Gates, race.Gate{X0: g.X0, Y0: g.Y0, X1: g.X1, Y1: g.Y1})
	}
	for _, s := range m.Grid {
		tr.Grid = append(tr.Grid, race.GridSlot{X: s.X, Y: s.Y, Angle: s.Angle})
	}
	if tr.Name == "" {
		tr.Name = filepath.Base(dir)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

func readManifest(dir string) (Manifest, error) {
	v := viper.New()
	v.SetDefault("finishFirst", int(FinishFirst))
	v.SetDefault("finishLast", int(FinishLast))
	v.SetConfigFile(filepath.Join(dir, ManifestFile))
	v.SetConfigType("json")

	var m Manifest
	if err := v.ReadInConfig(); err != nil {
		return m, fmt.Errorf("error reading track manifest: %w", err)
	}
	if err := v.Unmarshal(&m); err != nil {
		return m, fmt.Errorf("error decoding track manifest: %w", err)
	}
	return m, nil
}

func byteRange(v int) bool { return v >= 0 && v <= 255 }

func readOptional(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return b, nil
}

// ReadWaypoints decodes a little-endian uint16 count followed by that many
// int16 x,y pairs.
func ReadWaypoints(r io.Reader) ([]race.Point, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: waypoint count: %v", ErrBadMap, err)
	}
	if n == 0 {
		return nil, race.ErrNoWaypoints
	}
	raw := make([]int16, 2*int(n))
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: %d waypoints: %v", ErrBadMap, n, err)
	}
	wps := make([]race.Point, n)
	for i := range wps {
		wps[i] = race.Point{X: int(raw[2*i]), Y: int(raw[2*i+1])}
	}
	return wps, nil
}

// WriteWaypoints is the inverse of ReadWaypoints.
func WriteWaypoints(w io.Writer, wps []race.Point) error {
	if len(wps) > 0xFFFF {
		return fmt.Errorf("too many waypoints: %d", len(wps))
	}
	buf := binary.LittleEndian.AppendUint16(make([]byte, 0, 2+4*len(wps)), uint16(len(wps)))
	for i, p := range wps {
		if p.X < math.MinInt16 || p.X > math.MaxInt16 || p.Y < math.MinInt16 || p.Y > math.MaxInt16 {
			return fmt.Errorf("waypoint %d (%d,%d) does not fit in int16", i, p.X, p.Y)
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(p.X)))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(p.Y)))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing waypoints: %w", err)
	}
	return nil
}

// Save writes tr as a track directory that Load reads back.
func Save(dir string, tr *race.Track) error {
	if err := tr.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	t := tr.Terrain

	v := viper.New()
	v.Set("name", tr.Name)
	v.Set("width", t.Width)
	v.Set("height", t.Height)
	v.Set("finishFirst", int(t.FinishFirst))
	v.Set("finishLast", int(t.FinishLast))
	gates := make([]gateSpec, 0, len(tr.Gates))
	for _, g := range tr.Gates {
		gates = append(gates, gateSpec{X0: g.X0, Y0: g.Y0, X1: g.X1, Y1: g.Y1})
	}
	v.Set("gates", gates)
	grid := make([]slotSpec, 0, len(tr.Grid))
	for _, s := range tr.Grid {
		grid = append(grid, slotSpec{X: s.X, Y: s.Y, Angle: s.Angle})
	}
	v.Set("grid", grid)
	if err := v.WriteConfigAs(filepath.Join(dir, ManifestFile)); err != nil {
		return fmt.Errorf("writing track manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, MapFile), t.Tiles, 0o644); err != nil {
		return err
	}
	props := make([]byte, len(t.Classes))
	for i, c := range t.Classes {
		props[i] = uint8(c)
	}
	if err := os.WriteFile(filepath.Join(dir, PropertiesFile), props, 0o644); err != nil {
		return err
	}
	masks := make([]byte, 0, len(t.Masks)*race.TileSize)
	for _, m := range t.Masks {
		masks = append(masks, m[:]...)
	}
	if err := os.WriteFile(filepath.Join(dir, CollisionFile), masks, 0o644); err != nil {
		return err
	}

	var wp bytes.Buffer
	if err := WriteWaypoints(&wp, tr.Waypoints); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, WaypointsFile), wp.Bytes(), 0o644)
}
