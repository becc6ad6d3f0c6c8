package race

// CarState is the render-facing copy of one vehicle.
type CarState struct {
	ID       int
	IsPlayer bool
	X, Y     int // sprite centre, world pixels
	ScreenX  int // sprite top-left relative to the viewport
	ScreenY  int
	Angle    uint8
	Lap      int
	Speed    int
	Stunned  bool
	State    DriverState // StatePursuing for the player
}

// Signals are the scalar values the HUD and audio poll each frame.
type Signals struct {
	Speed     int // player velocity magnitude, 8.8 units
	Lap       int
	LapTarget int
	Position  int
	RaceTicks int
	Countdown int
	LastLap   int
	BestLap   int
	Phase     Phase
	Winner    int
}

// Frame is a committed copy of one tick, safe to hand to another goroutine.
type Frame struct {
	Tick    int
	View    Viewport
	Cars    []CarState
	Signals Signals
}

// Snapshot copies the committed state into f, reusing its Cars buffer.
func (w *World) Snapshot(f *Frame) {
	f.Tick = w.Tick
	f.View = w.View
	f.Cars = f.Cars[:0]
	f.Cars = append(f.Cars, w.carState(&w.Player, StatePursuing))
	for i := range w.AI {
		a := &w.AI[i]
		f.Cars = append(f.Cars, w.carState(&a.Vehicle, a.State))
	}
	f.Signals = w.Signals()
}

func (w *World) carState(v *Vehicle, s DriverState) CarState {
	x, y := v.PixelPos()
	sx, sy := w.View.ToScreen(x, y)
	return CarState{
		ID:       v.ID,
		IsPlayer: v.IsPlayer,
		X:        x,
		Y:        y,
		ScreenX:  sx,
		ScreenY:  sy,
		Angle:    v.Angle,
		Lap:      v.Lap,
		Speed:    v.Speed(),
		Stunned:  v.Stun > 0,
		State:    s,
	}
}

// Signals returns the player-facing scalars for this tick.
func (w *World) Signals() Signals {
	p := &w.Player
	return Signals{
		Speed:     p.Speed(),
		Lap:       p.Lap,
		LapTarget: w.Tuning.LapTarget,
		Position:  w.PlayerPosition(),
		RaceTicks: w.RaceTicks,
		Countdown: w.Countdown,
		LastLap:   p.LastLap,
		BestLap:   p.BestLap,
		Phase:     w.Phase,
		Winner:    w.Winner,
	}
}
