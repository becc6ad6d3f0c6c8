package race

import "slices"

// Phase is the race-level state.
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhaseRacing
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRacing:
		return "racing"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// World owns all mutable race state. Step is the only mutator and must be
// called from a single goroutine; readers take a Snapshot.
type World struct {
	Track  *Track
	Tuning Tuning
	Events *EventBus

	Player Vehicle
	AI     []AICar

	Phase     Phase
	Countdown int // ticks left before the start
	Tick      int // ticks since Reset
	RaceTicks int // ticks since the start
	Winner    int // vehicle ID, -1 while undecided

	View Viewport

	seed        uint64
	rng         *Rand
	cars        []*Vehicle
	brainCursor int
	rescueWait  int
}

// NewWorld builds a race on track with numAI computer cars and resets it.
func NewWorld(track *Track, tu Tuning, numAI int, seed uint64) *World {
	w := &World{
		Track:  track,
		Tuning: tu,
		Events: NewEventBus(),
		AI:     make([]AICar, numAI),
		View:   Viewport{W: DefaultViewW, H: DefaultViewH},
		seed:   seed,
	}
	w.cars = make([]*Vehicle, 0, numAI+1)
	w.cars = append(w.cars, &w.Player)
	for i := range w.AI {
		w.cars = append(w.cars, &w.AI[i].Vehicle)
	}
	w.Reset()
	return w
}

// Reset puts every car back on the grid and reseeds the RNG, so the same
// seed and inputs replay the same race.
func (w *World) Reset() {
	tu := w.Tuning
	w.rng = NewRand(w.seed)
	w.Tick = 0
	w.RaceTicks = 0
	w.Winner = -1
	w.brainCursor = 0
	w.rescueWait = 0
	w.Countdown = tu.CountdownTicks
	w.Phase = PhaseCountdown
	if w.Countdown <= 0 {
		w.Countdown = 0
		w.Phase = PhaseRacing
	}

	w.Player.ID = 0
	w.Player.IsPlayer = true
	w.Player.Place(w.Track.Slot(0))
	for i := range w.AI {
		a := &w.AI[i]
		a.ID = i + 1
		a.IsPlayer = false
		a.Reset(w.Track.Slot(i+1), tu.StartDelay+i*tu.StartStagger, w.rng, tu)
	}
	w.follow()
}

// Seed is the RNG seed Reset replays from.
func (w *World) Seed() uint64 { return w.seed }

// Cars returns the player followed by the AI cars. The slice is shared.
func (w *World) Cars() []*Vehicle { return w.cars }

// Step advances the simulation one tick: player, AI, car contacts, then
// race progress.
func (w *World) Step(in Input) {
	if in == nil {
		in = NoInput{}
	}
	w.Tick++
	if w.Phase == PhaseCountdown {
		w.Countdown--
		if w.Countdown <= 0 {
			w.Countdown = 0
			w.Phase = PhaseRacing
			w.emit(Event{Type: EventRaceStart, Vehicle: -1, Other: -1})
		}
		return
	}

	racing := w.Phase == PhaseRacing
	if racing {
		w.RaceTicks++
	}
	w.stepPlayer(in, racing)
	w.stepAI(racing)
	w.resolveContacts()
	if racing {
		w.updateProgress()
	}
	w.follow()
}

func (w *World) stepPlayer(in Input, racing bool) {
	p := &w.Player
	var c Controls
	if racing {
		c = readControls(in, 0)
		if in.IsActionHeld(0, ActionRescue) {
			w.rescue()
		}
	}
	if w.rescueWait > 0 {
		w.rescueWait--
	}
	Rotate(p, c, uint8(w.Tuning.PlayerTurnRate))
	if Integrate(p, c, w.Tuning.ThrustShift, w.Track.Terrain, w.Tuning) {
		w.emitAt(EventWallHit, p, -1, 0)
	}
}

func (w *World) stepAI(racing bool) {
	tu := w.Tuning
	terrain := w.Track.Terrain
	if racing && tu.RubberbandPeriod > 0 && w.RaceTicks%tu.RubberbandPeriod == 0 {
		for i := range w.AI {
			w.AI[i].Rubberband(w.Player.Progress, tu)
		}
	}

	for i := range w.AI {
		a := &w.AI[i]
		if !racing {
			Integrate(&a.Vehicle, Controls{}, tu.NormalShift, terrain, tu)
			continue
		}
		was := a.State
		if a.Update(w.scheduled(i), w.Track.Waypoints, terrain, w.rng, tu) {
			w.emitAt(EventWallHit, &a.Vehicle, -1, 0)
		}
		if a.State == StateRecovering && was != StateRecovering {
			w.emitAt(EventRecovery, &a.Vehicle, -1, a.RecoveryTurn)
		}
	}

	if k, n := tu.BrainsPerTick, len(w.AI); racing && k > 0 && k < n {
		w.brainCursor = (w.brainCursor + k) % n
	}
}

// scheduled reports whether AI car i gets a fresh brain decision this
// tick. BrainsPerTick of zero, or at least the number of cars, thinks for
// everyone every tick; otherwise a window of that many cars rotates.
func (w *World) scheduled(i int) bool {
	k, n := w.Tuning.BrainsPerTick, len(w.AI)
	if k <= 0 || k >= n {
		return true
	}
	return wrapIndex(i-w.brainCursor, n) < k
}

func (w *World) resolveContacts() {
	terrain := w.Track.Terrain
	for i := 0; i < len(w.cars); i++ {
		for j := i + 1; j < len(w.cars); j++ {
			a, b := w.cars[i], w.cars[j]
			if !ResolveCarCollision(a, b, terrain, w.Tuning, w.rng) {
				continue
			}
			ClampToBounds(a, terrain, w.Tuning)
			ClampToBounds(b, terrain, w.Tuning)
			w.emitAt(EventCarHit, a, b.ID, 0)
		}
	}
}

func (w *World) updateProgress() {
	for _, v := range w.cars {
		switch AdvanceProgress(v, w.Track.Gates, w.RaceTicks) {
		case GateCheckpoint:
			w.emitAt(EventCheckpoint, v, -1, v.LastGate)
		case GateLap:
			w.emitAt(EventLap, v, -1, v.Lap)
			if w.Winner < 0 && v.Lap >= w.Tuning.LapTarget {
				v.FinishedAt = w.RaceTicks
				w.Winner = v.ID
				w.Phase = PhaseFinished
				w.emitAt(EventFinish, v, -1, v.Lap)
			}
		}
	}
}

// rescue puts the player back on the last gate it passed, facing the next
// one, if that spot is clear of walls and AI cars.
func (w *World) rescue() {
	gates := w.Track.Gates
	if w.rescueWait > 0 || len(gates) == 0 {
		return
	}
	p := &w.Player
	gx, gy := gates[wrapIndex(p.LastGate, len(gates))].Center()
	if w.Track.Terrain.IsColliding(gx, gy) {
		return
	}
	dest := Vehicle{Pos: PosFromPixels(gx, gy)}
	for i := range w.AI {
		if CarsTouch(&dest, &w.AI[i].Vehicle, w.Tuning) {
			return
		}
	}
	nx, ny := gates[wrapIndex(p.NextCheckpoint, len(gates))].Center()
	p.Pos = PosFromPixels(gx, gy)
	p.Vel = Vec{}
	p.Angle = Atan8(nx-gx, ny-gy)
	p.Stun = w.Tuning.ReboundStun
	w.rescueWait = w.Tuning.RescueCooldown
	w.emitAt(EventRescue, p, -1, p.LastGate)
}

func (w *World) follow() {
	px, py := w.Player.PixelPos()
	t := w.Track.Terrain
	w.View.Follow(px, py, t.PixelWidth(), t.PixelHeight())
}

func (w *World) emit(e Event) {
	if w.Events == nil {
		return
	}
	e.Tick = w.RaceTicks
	w.Events.Emit(e)
}

func (w *World) emitAt(t EventType, v *Vehicle, other, data int) {
	x, y := v.PixelPos()
	w.emit(Event{Type: t, Vehicle: v.ID, Other: other, X: x, Y: y, Data: data})
}

// Standing is one row of the running order.
type Standing struct {
	ID         int
	IsPlayer   bool
	Lap        int
	Progress   int
	BestLap    int
	FinishedAt int
}

// Standings orders cars by the winner first, then by progress. Ties keep
// grid order.
func (w *World) Standings() []Standing {
	out := make([]Standing, 0, len(w.cars))
	for _, v := range w.cars {
		out = append(out, Standing{
			ID:         v.ID,
			IsPlayer:   v.IsPlayer,
			Lap:        v.Lap,
			Progress:   v.Progress,
			BestLap:    v.BestLap,
			FinishedAt: v.FinishedAt,
		})
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if a.ID == b.ID {
			return 0
		}
		if a.ID == w.Winner {
			return -1
		}
		if b.ID == w.Winner {
			return 1
		}
		return b.Progress - a.Progress
	})
	return out
}

// PlayerPosition is the player's 1-based place in the running order.
func (w *World) PlayerPosition() int {
	for i, s := range w.Standings() {
		if s.IsPlayer {
			return i + 1
		}
	}
	return 0
}
