package race

// Fixed-point layout. Positions carry 6 fractional bits (pixels*64),
// velocities carry 8 and are integrated as vel>>VelToPosShift.
const (
	PosShift      = 6
	PosOne        = 1 << PosShift
	VelToPosShift = 2
)

// Vec is a fixed-point 2D vector; the scale depends on what it holds.
type Vec struct {
	X, Y int32
}

// PosFromPixels converts whole pixels to a 10.6 position.
func PosFromPixels(px, py int) Vec {
	return Vec{X: int32(px) << PosShift, Y: int32(py) << PosShift}
}

// Pixels returns the whole-pixel part of a 10.6 position (floored).
func (v Vec) Pixels() (int, int) {
	return int(v.X >> PosShift), int(v.Y >> PosShift)
}

// SinLUT is sine scaled to 127 over a 256-step turn.
// Cosine is the same table read a quarter turn ahead.
var SinLUT = [256]int8{
	0, 3, 6, 9, 12, 16, 19, 22, 25, 28, 31, 34, 37, 40, 43, 46,
	49, 51, 54, 57, 60, 63, 65, 68, 71, 73, 76, 78, 81, 83, 85, 88,
	90, 92, 94, 96, 98, 100, 102, 104, 106, 107, 109, 111, 112, 113, 115, 116,
	117, 118, 120, 121, 122, 122, 123, 124, 125, 125, 126, 126, 126, 127, 127, 127,
	127, 127, 127, 127, 126, 126, 126, 125, 125, 124, 123, 122, 122, 121, 120, 118,
	117, 116, 115, 113, 112, 111, 109, 107, 106, 104, 102, 100, 98, 96, 94, 92,
	90, 88, 85, 83, 81, 78, 76, 73, 71, 68, 65, 63, 60, 57, 54, 51,
	49, 46, 43, 40, 37, 34, 31, 28, 25, 22, 19, 16, 12, 9, 6, 3,
	0, -2, -5, -8, -11, -15, -18, -21, -24, -27, -30, -33, -36, -39, -42, -45,
	-48, -50, -53, -56, -59, -62, -64, -67, -70, -72, -75, -77, -80, -82, -84, -87,
	-89, -91, -93, -95, -97, -99, -101, -103, -105, -106, -108, -110, -111, -112, -114, -115,
	-116, -117, -119, -120, -121, -121, -122, -123, -124, -124, -125, -125, -125, -126, -126, -126,
	-126, -126, -126, -126, -125, -125, -125, -124, -124, -123, -122, -121, -121, -120, -119, -117,
	-116, -115, -114, -112, -111, -110, -108, -106, -105, -103, -101, -99, -97, -95, -93, -91,
	-89, -87, -84, -82, -80, -77, -75, -72, -70, -67, -64, -62, -59, -56, -53, -50,
	-48, -45, -42, -39, -36, -33, -30, -27, -24, -21, -18, -15, -11, -8, -5, -2,
}

// Sin returns SinLUT[a].
func Sin(a uint8) int32 { return int32(SinLUT[a]) }

// Cos returns SinLUT[a+64].
func Cos(a uint8) int32 { return int32(SinLUT[a+64]) }

// Forward is the unscaled unit vector for angle a. Angle 0 faces up and
// angles grow counter-clockwise on screen, so 64 faces left.
func Forward(a uint8) (int32, int32) {
	return -Sin(a), -Cos(a)
}

// Atan8 returns the 8-bit heading of (dx, dy) in screen space using a
// piecewise-linear octant approximation. (0,0) maps to 0.
func Atan8(dx, dy int) uint8 {
	if dx == 0 && dy == 0 {
		return 0
	}
	// Rotate into the "up" frame: ux points left, uy points up.
	ux, uy := int64(-dx), int64(-dy)

	var quadrant uint8
	var along, toward int64
	switch {
	case uy > 0 && ux >= 0:
		quadrant, along, toward = 0, uy, ux
	case ux > 0 && uy <= 0:
		quadrant, along, toward = 1, ux, -uy
	case uy < 0 && ux <= 0:
		quadrant, along, toward = 2, -uy, -ux
	default:
		quadrant, along, toward = 3, -ux, uy
	}

	var off int64
	if toward <= along {
		off = 32 * toward / along
	} else {
		off = 64 - 32*along/toward
	}
	return quadrant*64 + uint8(off)
}

// AngleError is the unsigned distance between two headings, 0..128.
func AngleError(a, b uint8) uint8 {
	d := b - a
	if d > 128 {
		return -d
	}
	return d
}

// SteerToward turns angle toward target by at most rate. The uint8
// difference picks the direction: below 128 the angle grows, otherwise it
// shrinks, so an exact half turn always resolves clockwise.
func SteerToward(angle, target, rate uint8) uint8 {
	diff := target - angle
	if diff == 0 {
		return angle
	}
	if diff < 128 {
		if diff <= rate {
			return target
		}
		return angle + rate
	}
	if -diff <= rate {
		return target
	}
	return angle - rate
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
