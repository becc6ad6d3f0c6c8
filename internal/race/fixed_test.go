package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosIsSinQuarterTurnAhead(t *testing.T) {
	for a := 0; a < 256; a++ {
		assert.Equal(t, Sin(uint8(a+64)), Cos(uint8(a)), "angle %d", a)
	}
	assert.Equal(t, int32(0), Sin(0))
	assert.Equal(t, int32(127), Cos(0))
}

func TestForwardCardinals(t *testing.T) {
	tests := []struct {
		name   string
		angle  uint8
		fx, fy int32
	}{
		{"up", 0, 0, -127},
		{"left", 64, -127, 0},
		{"down", 128, 0, 126},
		{"right", 192, 126, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, fy := Forward(tt.angle)
			assert.Equal(t, tt.fx, fx)
			assert.Equal(t, tt.fy, fy)
		})
	}
}

func TestAtan8(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   uint8
	}{
		{"zero", 0, 0, 0},
		{"up", 0, -10, 0},
		{"up-left", -10, -10, 32},
		{"left", -10, 0, 64},
		{"down-left", -10, 10, 96},
		{"down", 0, 10, 128},
		{"down-right", 10, 10, 160},
		{"right", 10, 0, 192},
		{"up-right", 10, -10, 224},
		{"shallow left of up", -1, -100, 0},
		{"steep", -100, -50, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Atan8(tt.dx, tt.dy))
		})
	}
}

func TestAtan8MatchesForward(t *testing.T) {
	// The heading of a car's own forward vector should be its angle, give
	// or take the linear approximation error.
	for a := 0; a < 256; a++ {
		fx, fy := Forward(uint8(a))
		got := Atan8(int(fx), int(fy))
		assert.LessOrEqual(t, AngleError(uint8(a), got), uint8(4), "angle %d got %d", a, got)
	}
}

func TestSteerToward(t *testing.T) {
	tests := []struct {
		name          string
		angle, target uint8
		want          uint8
	}{
		{"already there", 10, 10, 10},
		{"small left", 10, 40, 13},
		{"small right", 40, 10, 37},
		{"snap within rate", 10, 12, 12},
		{"snap right within rate", 12, 10, 10},
		{"wraps up through 255", 250, 5, 253},
		{"wraps down through 0", 5, 250, 2},
		{"half turn decrements", 0, 128, 253},
		{"half turn decrements from 200", 200, 72, 197},
		{"just under half turn increments", 0, 127, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SteerToward(tt.angle, tt.target, 3))
		})
	}
}

func TestSteerTowardTakesShorterArc(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for tgt := 0; tgt < 256; tgt += 5 {
			angle, target := uint8(a), uint8(tgt)
			before := AngleError(angle, target)
			after := AngleError(SteerToward(angle, target, 3), target)
			if before == 0 {
				assert.Equal(t, uint8(0), after)
				continue
			}
			assert.Less(t, after, before, "from %d to %d", a, tgt)
		}
	}
}

func TestAngleError(t *testing.T) {
	assert.Equal(t, uint8(0), AngleError(5, 5))
	assert.Equal(t, uint8(10), AngleError(250, 4))
	assert.Equal(t, uint8(10), AngleError(4, 250))
	assert.Equal(t, uint8(128), AngleError(0, 128))
}

func TestIsqrt(t *testing.T) {
	assert.Equal(t, int64(0), isqrt(0))
	assert.Equal(t, int64(1), isqrt(3))
	assert.Equal(t, int64(2), isqrt(4))
	assert.Equal(t, int64(100), isqrt(10000))
	assert.Equal(t, int64(99), isqrt(9999))
}
