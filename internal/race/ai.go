package race

// DriverState is where an AI car is in its driving state machine.
type DriverState uint8

const (
	StateDormant DriverState = iota
	StatePursuing
	StateRecovering
)

func (s DriverState) String() string {
	switch s {
	case StateDormant:
		return "dormant"
	case StatePursuing:
		return "pursuing"
	case StateRecovering:
		return "recovering"
	}
	return "unknown"
}

// SpeedTier selects a thrust shift. Tiers are ordered fastest first so
// de-rating is tier+1.
type SpeedTier uint8

const (
	TierBoost SpeedTier = iota
	TierNormal
	TierSlow
	TierCrawl
)

func (s SpeedTier) Shift(tu Tuning) int {
	switch s {
	case TierBoost:
		return tu.BoostShift
	case TierNormal:
		return tu.NormalShift
	case TierSlow:
		return tu.SlowShift
	}
	return tu.CrawlShift
}

func (s SpeedTier) derate() SpeedTier {
	if s >= TierCrawl {
		return TierCrawl
	}
	return s + 1
}

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// AICar is a computer driver: a Vehicle plus its brain state.
type AICar struct {
	Vehicle

	State      DriverState
	StartDelay int

	Waypoint         int
	OffsetX, OffsetY int

	StuckTimer   int
	LastX, LastY int

	Recovery     int
	RecoveryTurn int // +1 steers left, -1 right

	BaseTier    SpeedTier
	AppliedTier SpeedTier

	target  uint8 // heading chosen by the last think
	decided bool
}

// Reset places the car on the grid, dormant for delay ticks.
func (a *AICar) Reset(slot GridSlot, delay int, rng *Rand, tu Tuning) {
	a.Vehicle.Place(slot)
	a.State = StateDormant
	a.StartDelay = delay
	a.Waypoint = 1
	a.resampleOffset(rng, tu)
	a.StuckTimer = 0
	a.LastX, a.LastY = a.PixelPos()
	a.Recovery = 0
	a.RecoveryTurn = 0
	a.BaseTier = TierNormal
	a.AppliedTier = TierNormal
	a.target = a.Angle
	a.decided = false
}

func (a *AICar) resampleOffset(rng *Rand, tu Tuning) {
	a.OffsetX = rng.Range(-tu.OffsetPx, tu.OffsetPx)
	a.OffsetY = rng.Range(-tu.OffsetPx, tu.OffsetPx)
}

// Target returns the heading the brain is steering toward.
func (a *AICar) Target() uint8 { return a.target }

// Think picks the next heading toward the current waypoint, advancing
// the waypoint when it is within reach.
func (a *AICar) Think(waypoints []Point, rng *Rand, tu Tuning) {
	a.decided = true
	n := len(waypoints)
	if n == 0 {
		a.target = a.Angle
		return
	}
	a.Waypoint = wrapIndex(a.Waypoint, n)

	px, py := a.PixelPos()
	dx, dy := a.aimAt(waypoints[a.Waypoint], px, py)
	r := tu.ReachRadiusPx
	if dx*dx+dy*dy <= r*r {
		a.Waypoint = (a.Waypoint + 1) % n
		a.resampleOffset(rng, tu)
		dx, dy = a.aimAt(waypoints[a.Waypoint], px, py)
	}
	a.target = Atan8(dx, dy)
}

func (a *AICar) aimAt(wp Point, px, py int) (int, int) {
	return wp.X + a.OffsetX - px, wp.Y + a.OffsetY - py
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Update advances the state machine and physics by one tick. think says
// whether the brain gets a fresh decision this tick; otherwise the cached
// heading is reused. It reports whether the car hit a wall.
func (a *AICar) Update(think bool, waypoints []Point, t *Terrain, rng *Rand, tu Tuning) bool {
	switch a.State {
	case StateDormant:
		if a.StartDelay > 0 {
			a.StartDelay--
		}
		if a.StartDelay == 0 {
			a.State = StatePursuing
			a.restartStuckWindow()
		}
		return Integrate(&a.Vehicle, Controls{}, tu.NormalShift, t, tu)

	case StateRecovering:
		c := Controls{Reverse: true, Left: a.RecoveryTurn > 0, Right: a.RecoveryTurn < 0}
		Rotate(&a.Vehicle, c, uint8(tu.AITurnRate))
		hit := Integrate(&a.Vehicle, c, tu.NormalShift, t, tu)
		a.Recovery--
		if a.Recovery <= 0 {
			a.Recovery = 0
			a.State = StatePursuing
			a.decided = false
			a.restartStuckWindow()
		}
		return hit
	}

	if think || !a.decided {
		a.Think(waypoints, rng, tu)
	}
	a.Angle = SteerToward(a.Angle, a.target, uint8(tu.AITurnRate))
	a.AppliedTier = a.BaseTier
	if AngleError(a.Angle, a.target) > tu.SharpTurn {
		a.AppliedTier = a.BaseTier.derate()
	}
	hit := Integrate(&a.Vehicle, Controls{Thrust: true}, a.AppliedTier.Shift(tu), t, tu)
	a.checkStuck(rng, tu)
	return hit
}

func (a *AICar) restartStuckWindow() {
	a.StuckTimer = 0
	a.LastX, a.LastY = a.PixelPos()
}

// checkStuck compares the position at the end of each window with the one
// recorded at its start.
func (a *AICar) checkStuck(rng *Rand, tu Tuning) {
	a.StuckTimer++
	if a.StuckTimer < tu.StuckWindow {
		return
	}
	px, py := a.PixelPos()
	dx, dy := px-a.LastX, py-a.LastY
	th := tu.StuckThresholdPx
	a.restartStuckWindow()
	if dx < th && dx > -th && dy < th && dy > -th {
		a.EnterRecovery(rng, tu)
	}
}

// EnterRecovery starts the reverse-and-turn manoeuvre with a random,
// fixed turn direction.
func (a *AICar) EnterRecovery(rng *Rand, tu Tuning) {
	a.State = StateRecovering
	a.Recovery = tu.RecoveryTicks
	a.RecoveryTurn = rng.Sign()
}

// Rubberband sets the base tier from the progress gap to the player.
func (a *AICar) Rubberband(playerProgress int, tu Tuning) {
	diff := playerProgress - a.Progress
	switch {
	case diff > tu.RubberbandLead:
		a.BaseTier = TierBoost
	case diff < -tu.RubberbandLead:
		a.BaseTier = TierSlow
	default:
		a.BaseTier = TierNormal
	}
}
