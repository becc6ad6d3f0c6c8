package race

import (
	"errors"
	"fmt"
)

var ErrNoWaypoints = errors.New("track has no waypoints")

// GridSlot is a starting position in pixels with a heading.
type GridSlot struct {
	X, Y  int
	Angle uint8
}

// Track is everything the simulation needs to race on a circuit.
type Track struct {
	Name      string
	Terrain   *Terrain
	Waypoints []Point
	Gates     []Gate // finish first, then checkpoints in order
	Grid      []GridSlot
}

// Validate checks that the track can be raced on.
func (tr *Track) Validate() error {
	if tr.Terrain == nil {
		return errors.New("track has no terrain")
	}
	if err := tr.Terrain.Validate(); err != nil {
		return fmt.Errorf("track %q: %w", tr.Name, err)
	}
	if len(tr.Waypoints) == 0 {
		return ErrNoWaypoints
	}
	if len(tr.Gates) < 2 {
		return fmt.Errorf("track %q: need a finish gate and at least one checkpoint, got %d gates", tr.Name, len(tr.Gates))
	}
	if len(tr.Grid) == 0 {
		return fmt.Errorf("track %q: empty start grid", tr.Name)
	}
	return nil
}

// Slot returns grid slot i, wrapping when there are more cars than slots.
func (tr *Track) Slot(i int) GridSlot {
	if len(tr.Grid) == 0 {
		return GridSlot{X: tr.Terrain.PixelWidth() / 2, Y: tr.Terrain.PixelHeight() / 2}
	}
	return tr.Grid[wrapIndex(i, len(tr.Grid))]
}
