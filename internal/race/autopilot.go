package race

// Autopilot is an Input that drives the player car around the waypoint
// line. It powers headless runs and the attract-mode demo.
type Autopilot struct {
	w        *World
	waypoint int
	planned  int
	held     [ActionRescue + 1]bool
	stillFor int
}

// StillTicksBeforeRescue is how long a stopped autopilot car waits before
// asking for a rescue.
const StillTicksBeforeRescue = 90

func NewAutopilot(w *World) *Autopilot {
	return &Autopilot{w: w, waypoint: 1, planned: -1}
}

func (ap *Autopilot) IsActionHeld(player int, a Action) bool {
	if player != 0 || int(a) >= len(ap.held) {
		return false
	}
	if ap.planned != ap.w.Tick {
		ap.plan()
		ap.planned = ap.w.Tick
	}
	return ap.held[a]
}

func (ap *Autopilot) plan() {
	ap.held = [ActionRescue + 1]bool{}
	w := ap.w
	wps := w.Track.Waypoints
	if len(wps) == 0 {
		return
	}
	p := &w.Player
	px, py := p.PixelPos()

	ap.waypoint = wrapIndex(ap.waypoint, len(wps))
	dx, dy := wps[ap.waypoint].X-px, wps[ap.waypoint].Y-py
	r := w.Tuning.ReachRadiusPx
	if dx*dx+dy*dy <= r*r {
		ap.waypoint = (ap.waypoint + 1) % len(wps)
		dx, dy = wps[ap.waypoint].X-px, wps[ap.waypoint].Y-py
	}

	target := Atan8(dx, dy)
	errAngle := AngleError(p.Angle, target)
	if errAngle > uint8(w.Tuning.PlayerTurnRate)/2 {
		if target-p.Angle < 128 {
			ap.held[ActionSteerLeft] = true
		} else {
			ap.held[ActionSteerRight] = true
		}
	}
	ap.held[ActionThrust] = errAngle <= 64

	if p.Speed() == 0 {
		ap.stillFor++
	} else {
		ap.stillFor = 0
	}
	if ap.stillFor > StillTicksBeforeRescue {
		ap.held[ActionRescue] = true
		ap.stillFor = 0
	}
}
