package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrictionConvergesToZero(t *testing.T) {
	tu := DefaultTuning()
	for _, start := range []int32{1, -1, 3, -3, 4, -4, 17, -17, 100, -100, 255, -256, 1000, -1000, 4000, -4000} {
		for _, class := range []TerrainClass{ClassRoad, ClassGrass} {
			v := &Vehicle{Vel: Vec{X: start, Y: -start / 2}}
			ticks := 0
			for v.Vel != (Vec{}) {
				ApplyFriction(v, tu, class)
				ticks++
				require.Less(t, ticks, 200, "start %d on %s never settled", start, class)
			}
		}
	}
}

func TestFrictionNeverReversesSign(t *testing.T) {
	tu := DefaultTuning()
	for start := int32(-600); start <= 600; start += 13 {
		v := &Vehicle{Vel: Vec{X: start}}
		for i := 0; i < 100; i++ {
			prev := v.Vel.X
			ApplyFriction(v, tu, ClassGrass)
			if prev > 0 {
				assert.GreaterOrEqual(t, v.Vel.X, int32(0))
			}
			if prev < 0 {
				assert.LessOrEqual(t, v.Vel.X, int32(0))
			}
			assert.LessOrEqual(t, abs32(v.Vel.X), abs32(prev))
		}
	}
}

func TestGrassDragsHarder(t *testing.T) {
	tu := DefaultTuning()
	road := &Vehicle{Vel: Vec{X: 400}}
	grass := &Vehicle{Vel: Vec{X: 400}}
	ApplyFriction(road, tu, ClassRoad)
	ApplyFriction(grass, tu, ClassGrass)
	assert.Equal(t, int32(375), road.Vel.X)
	assert.Equal(t, int32(329), grass.Vel.X)
}

func TestRotateWraps(t *testing.T) {
	v := &Vehicle{Angle: 254}
	Rotate(v, Controls{Left: true}, 4)
	assert.Equal(t, uint8(2), v.Angle)
	Rotate(v, Controls{Right: true}, 4)
	Rotate(v, Controls{Right: true}, 4)
	assert.Equal(t, uint8(250), v.Angle)
	Rotate(v, Controls{Left: true, Right: true}, 4)
	assert.Equal(t, uint8(250), v.Angle)
}

func TestThrustAndReverse(t *testing.T) {
	v := &Vehicle{Angle: 64}
	ApplyThrust(v, Controls{Thrust: true}, 3)
	assert.Equal(t, Vec{X: -15, Y: 0}, v.Vel)

	v = &Vehicle{Angle: 64}
	ApplyThrust(v, Controls{Reverse: true}, 3)
	assert.Equal(t, Vec{X: 7, Y: 0}, v.Vel)

	v = &Vehicle{Angle: 0}
	ApplyThrust(v, Controls{Thrust: true}, 3)
	assert.Equal(t, Vec{X: 0, Y: -15}, v.Vel)
}

func TestStunSuppressesThrust(t *testing.T) {
	tu := DefaultTuning()
	tr := openTerrain(64, 48)
	v := &Vehicle{Pos: PosFromPixels(200, 200), Angle: 64, Stun: 3}
	for i := 0; i < 3; i++ {
		Integrate(v, Controls{Thrust: true}, tu.ThrustShift, tr, tu)
		assert.Equal(t, Vec{}, v.Vel, "tick %d", i)
	}
	assert.Equal(t, 0, v.Stun)
	Integrate(v, Controls{Thrust: true}, tu.ThrustShift, tr, tu)
	assert.NotEqual(t, Vec{}, v.Vel)
}

// A car at (245,70) facing left thrusts for ten ticks on open road, then
// coasts to a stop.
func TestThrustLeftThenCoast(t *testing.T) {
	tu := DefaultTuning()
	tr := openTerrain(64, 48)
	v := &Vehicle{Pos: PosFromPixels(245, 70), Angle: 64}

	peak := Sin(64) >> tu.ThrustShift
	lastX := v.Pos.X
	for i := 0; i < 10; i++ {
		hit := Integrate(v, Controls{Thrust: true}, tu.ThrustShift, tr, tu)
		require.False(t, hit)
		assert.Less(t, v.Pos.X, lastX, "tick %d", i)
		lastX = v.Pos.X
		_, py := v.PixelPos()
		assert.InDelta(t, 70, py, 1)
	}
	assert.Less(t, int32(v.Speed()), 10*peak)
	assert.Equal(t, int32(0), v.Vel.Y)
	px, _ := v.PixelPos()
	assert.Less(t, px, 245)

	for i := 0; i < 50; i++ {
		Integrate(v, Controls{}, tu.ThrustShift, tr, tu)
	}
	assert.Equal(t, Vec{}, v.Vel)
}
