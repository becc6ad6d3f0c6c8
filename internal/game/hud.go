package game

import (
	"fmt"
	"strings"

	"racer/internal/race"
)

// FormatTicks renders a tick count as m:ss.cc at TickRate.
func FormatTicks(ticks int) string {
	if ticks <= 0 {
		return "-:--.--"
	}
	cs := ticks * 100 / TickRate
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}

func ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

// Title is the window title line that doubles as the HUD.
func Title(track string, s race.Signals, cars int, paused, demo bool) string {
	var b strings.Builder
	b.WriteString("racer: ")
	b.WriteString(track)

	switch s.Phase {
	case race.PhaseCountdown:
		fmt.Fprintf(&b, " | GET READY %d", (s.Countdown+TickRate-1)/TickRate)
	case race.PhaseRacing:
		lap := s.Lap + 1
		if lap > s.LapTarget {
			lap = s.LapTarget
		}
		fmt.Fprintf(&b, " | lap %d/%d | %s of %d | %s",
			lap, s.LapTarget, ordinal(s.Position), cars, FormatTicks(s.RaceTicks))
		if s.LastLap > 0 {
			fmt.Fprintf(&b, " | last %s best %s", FormatTicks(s.LastLap), FormatTicks(s.BestLap))
		}
	case race.PhaseFinished:
		if s.Winner == 0 {
			b.WriteString(" | YOU WIN")
		} else {
			fmt.Fprintf(&b, " | finished %s", ordinal(s.Position))
		}
		fmt.Fprintf(&b, " | %s | best %s | R to race again", FormatTicks(s.RaceTicks), FormatTicks(s.BestLap))
	}

	if demo {
		b.WriteString(" | DEMO")
	}
	if paused {
		b.WriteString(" | PAUSED")
	}
	return b.String()
}
