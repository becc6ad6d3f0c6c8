package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGates = []Gate{
	{X0: 0, Y0: 0, X1: 0, Y1: 3},
	{X0: 5, Y0: 0, X1: 5, Y1: 3},
	{X0: 10, Y0: 0, X1: 10, Y1: 3},
}

// atTile parks a vehicle in the middle of a tile.
func atTile(v *Vehicle, tx, ty int) {
	v.Pos = PosFromPixels(tx*TileSize+4, ty*TileSize+4)
}

func TestAdvanceProgressInOrder(t *testing.T) {
	v := &Vehicle{}
	v.Place(GridSlot{X: 20, Y: 12})

	atTile(v, 2, 1)
	assert.Equal(t, GateNone, AdvanceProgress(v, testGates, 10))

	atTile(v, 5, 1)
	require.Equal(t, GateCheckpoint, AdvanceProgress(v, testGates, 20))
	assert.Equal(t, 2, v.NextCheckpoint)
	assert.Equal(t, 1, v.Progress)
	assert.Equal(t, 1, v.LastGate)

	// Sitting in the gate does not count twice.
	assert.Equal(t, GateNone, AdvanceProgress(v, testGates, 21))
	assert.Equal(t, 1, v.Progress)

	// The finish is ignored until checkpoint 2 is crossed.
	atTile(v, 0, 2)
	assert.Equal(t, GateNone, AdvanceProgress(v, testGates, 30))
	assert.Equal(t, 0, v.Lap)

	atTile(v, 10, 3)
	require.Equal(t, GateCheckpoint, AdvanceProgress(v, testGates, 40))
	assert.Equal(t, 0, v.NextCheckpoint)

	atTile(v, 0, 0)
	require.Equal(t, GateLap, AdvanceProgress(v, testGates, 500))
	assert.Equal(t, 1, v.Lap)
	assert.Equal(t, 1, v.NextCheckpoint)
	assert.Equal(t, 3, v.Progress)
	assert.Equal(t, 0, v.LastGate)
	assert.Equal(t, 500, v.LastLap)
	assert.Equal(t, 500, v.BestLap)
	assert.Equal(t, 500, v.LapStart)
}

func driveLap(t *testing.T, v *Vehicle, finishTick int) {
	t.Helper()
	atTile(v, 5, 1)
	require.Equal(t, GateCheckpoint, AdvanceProgress(v, testGates, finishTick-2))
	atTile(v, 10, 1)
	require.Equal(t, GateCheckpoint, AdvanceProgress(v, testGates, finishTick-1))
	atTile(v, 0, 1)
	require.Equal(t, GateLap, AdvanceProgress(v, testGates, finishTick))
}

func TestLapTimes(t *testing.T) {
	v := &Vehicle{}
	v.Place(GridSlot{X: 20, Y: 12})

	driveLap(t, v, 500)
	driveLap(t, v, 900)
	assert.Equal(t, 400, v.LastLap)
	assert.Equal(t, 400, v.BestLap)

	driveLap(t, v, 1500)
	assert.Equal(t, 600, v.LastLap)
	assert.Equal(t, 400, v.BestLap)
	assert.Equal(t, 3, v.Lap)
}

func TestProgressCountsEveryGate(t *testing.T) {
	v := &Vehicle{}
	v.Place(GridSlot{X: 20, Y: 12})
	n := len(testGates)
	for lap := 0; lap < 4; lap++ {
		driveLap(t, v, 100*(lap+1))
		assert.Equal(t, n*v.Lap+wrapIndex(v.NextCheckpoint-1, n), v.Progress)
	}
}

func TestAdvanceProgressNeedsTwoGates(t *testing.T) {
	v := &Vehicle{}
	v.Place(GridSlot{X: 4, Y: 4})
	assert.Equal(t, GateNone, AdvanceProgress(v, nil, 1))
	assert.Equal(t, GateNone, AdvanceProgress(v, testGates[:1], 1))
	assert.Equal(t, 0, v.Progress)
}

func TestGateGeometry(t *testing.T) {
	g := Gate{X0: 32, Y0: 3, X1: 32, Y1: 12}
	assert.True(t, g.Contains(32, 3))
	assert.True(t, g.Contains(32, 12))
	assert.False(t, g.Contains(31, 5))
	assert.False(t, g.Contains(32, 13))

	x, y := g.Center()
	assert.Equal(t, 260, x)
	assert.Equal(t, 64, y)
}
