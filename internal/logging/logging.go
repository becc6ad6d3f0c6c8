package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"racer/internal/race"
)

// ParseLevel maps a config string onto a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// New builds a console logger writing to out, plus a plain copy to each of
// extra (log files).
func New(level string, out io.Writer, extra ...io.Writer) zerolog.Logger {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339},
	}
	for _, w := range extra {
		writers = append(writers, zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true})
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()
}

// RaceLogger turns race events into log entries. Lap and finish lines are
// info; contacts and recoveries are debug.
type RaceLogger struct {
	log       zerolog.Logger
	wallHits  int
	carHits   int
	recovered int
}

// Attach subscribes a RaceLogger to every event on bus.
func Attach(log zerolog.Logger, bus *race.EventBus) *RaceLogger {
	rl := &RaceLogger{log: log.With().Str("component", "race").Logger()}
	bus.SubscribeAll(rl.Handle)
	return rl
}

func (rl *RaceLogger) Handle(e race.Event) {
	switch e.Type {
	case race.EventRaceStart:
		rl.log.Info().Msg("Race started")
	case race.EventLap:
		rl.log.Info().Int("car", e.Vehicle).Int("lap", e.Data).Int("tick", e.Tick).Msg("Lap complete")
	case race.EventFinish:
		rl.log.Info().Int("car", e.Vehicle).Int("tick", e.Tick).
			Int("wallHits", rl.wallHits).Int("carHits", rl.carHits).Int("recoveries", rl.recovered).
			Msg("Race finished")
	case race.EventCheckpoint:
		rl.log.Trace().Int("car", e.Vehicle).Int("gate", e.Data).Int("tick", e.Tick).Msg("Checkpoint")
	case race.EventWallHit:
		rl.wallHits++
		rl.log.Trace().Int("car", e.Vehicle).Int("x", e.X).Int("y", e.Y).Msg("Wall hit")
	case race.EventCarHit:
		rl.carHits++
		rl.log.Debug().Int("car", e.Vehicle).Int("other", e.Other).Int("tick", e.Tick).Msg("Car contact")
	case race.EventRecovery:
		rl.recovered++
		rl.log.Debug().Int("car", e.Vehicle).Int("turn", e.Data).Int("x", e.X).Int("y", e.Y).Msg("AI recovering")
	case race.EventRescue:
		rl.log.Info().Int("gate", e.Data).Int("tick", e.Tick).Msg("Player rescued")
	}
}

// Counts returns the wall, car and recovery totals seen so far.
func (rl *RaceLogger) Counts() (wallHits, carHits, recoveries int) {
	return rl.wallHits, rl.carHits, rl.recovered
}
