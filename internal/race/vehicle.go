package race

// Vehicle is the physical and race state shared by the player and AI cars.
type Vehicle struct {
	ID       int
	IsPlayer bool

	Pos   Vec   // sprite centre, 10.6
	Vel   Vec   // 8.8, integrated as Vel>>VelToPosShift
	Angle uint8 // 0 = up, counter-clockwise

	Lap            int
	NextCheckpoint int
	Progress       int // checkpoints passed, never reset
	LastGate       int
	Stun           int

	LapStart   int // race tick the current lap began
	LastLap    int // ticks, 0 until the first lap completes
	BestLap    int
	FinishedAt int // race tick the lap target was reached
}

// Place puts a vehicle at rest on a grid slot with fresh race state.
func (v *Vehicle) Place(slot GridSlot) {
	v.Pos = PosFromPixels(slot.X, slot.Y)
	v.Vel = Vec{}
	v.Angle = slot.Angle
	v.Lap = 0
	v.NextCheckpoint = 1
	v.Progress = 0
	v.LastGate = 0
	v.Stun = 0
	v.LapStart = 0
	v.LastLap = 0
	v.BestLap = 0
	v.FinishedAt = 0
}

// PixelPos returns the sprite centre in whole pixels.
func (v *Vehicle) PixelPos() (int, int) {
	return v.Pos.Pixels()
}

// Speed is the velocity magnitude in 8.8 units.
func (v *Vehicle) Speed() int {
	x, y := int64(v.Vel.X), int64(v.Vel.Y)
	return int(isqrt(x*x + y*y))
}

// Finished reports whether the vehicle has reached the lap target.
func (v *Vehicle) Finished() bool { return v.FinishedAt > 0 }
