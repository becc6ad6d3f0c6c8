package race

// Gate is an inclusive rectangle of tiles. Gate 0 of a track is the finish
// line; the rest are checkpoints in driving order.
type Gate struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether tile (tx, ty) lies inside the gate.
func (g Gate) Contains(tx, ty int) bool {
	return tx >= g.X0 && tx <= g.X1 && ty >= g.Y0 && ty <= g.Y1
}

// Center returns the middle of the gate in pixels.
func (g Gate) Center() (int, int) {
	return (g.X0 + g.X1 + 1) * TileSize / 2, (g.Y0 + g.Y1 + 1) * TileSize / 2
}

// GateResult says what a progress update did.
type GateResult uint8

const (
	GateNone GateResult = iota
	GateCheckpoint
	GateLap
)

// AdvanceProgress moves a vehicle through the gate sequence. Only the gate
// the vehicle is expecting counts; any other gate is ignored. Crossing the
// finish gate completes a lap and records its time against raceTick.
func AdvanceProgress(v *Vehicle, gates []Gate, raceTick int) GateResult {
	n := len(gates)
	if n < 2 {
		return GateNone
	}
	next := wrapIndex(v.NextCheckpoint, n)
	px, py := v.PixelPos()
	if !gates[next].Contains(px/TileSize, py/TileSize) {
		return GateNone
	}

	v.Progress++
	v.LastGate = next
	if next != 0 {
		v.NextCheckpoint = (next + 1) % n
		return GateCheckpoint
	}

	v.Lap++
	v.NextCheckpoint = 1
	v.LastLap = raceTick - v.LapStart
	if v.BestLap == 0 || v.LastLap < v.BestLap {
		v.BestLap = v.LastLap
	}
	v.LapStart = raceTick
	return GateLap
}
