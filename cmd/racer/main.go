package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"racer/internal/config"
	"racer/internal/game"
	"racer/internal/logging"
	"racer/internal/race"
	"racer/internal/results"
	"racer/internal/track"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.NewFlagSet("racer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configDir, _ := fs.GetString("config")
	if err := config.Load(configDir); err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	var logFile *os.File
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer logFile.Close()
	}
	var log zerolog.Logger
	if logFile != nil {
		log = logging.New(cfg.LogLevel, os.Stderr, logFile)
	} else {
		log = logging.New(cfg.LogLevel, os.Stderr)
	}

	tr, err := track.Open(cfg.Track)
	if err != nil {
		return err
	}
	log.Info().Str("track", tr.Name).Int("gates", len(tr.Gates)).Int("waypoints", len(tr.Waypoints)).Msg("Track loaded")

	if dir, _ := fs.GetString("export-track"); dir != "" {
		if err := track.Save(dir, tr); err != nil {
			return err
		}
		log.Info().Str("dir", dir).Msg("Track exported")
		return nil
	}

	w := race.NewWorld(tr, cfg.Tuning, cfg.AICars, cfg.Seed)
	rl := logging.Attach(log, w.Events)

	store := openStore(cfg.Results, log)
	if store != nil {
		defer store.Close()
		rec := results.NewRecorder(w)
		w.Events.Subscribe(race.EventFinish, func(race.Event) {
			if err := store.Save(context.Background(), rec.Result()); err != nil {
				log.Error().Err(err).Msg("Failed to record race")
			}
		})
	}

	if cfg.Headless {
		runHeadless(w, cfg.Ticks, log)
	} else {
		game.RunDesktop(w, game.Options{
			Window: cfg.Window,
			Audio:  cfg.Audio,
			Demo:   cfg.Demo,
			Log:    log,
		})
	}

	walls, cars, recoveries := rl.Counts()
	log.Debug().Int("wallHits", walls).Int("carHits", cars).Int("recoveries", recoveries).Msg("Session totals")
	if store != nil {
		reportRecords(store, tr.Name, log)
	}
	return nil
}

// openStore opens the results database. Failure only disables recording.
func openStore(cfg config.ResultsConfig, log zerolog.Logger) *results.Manager {
	if !cfg.Enabled {
		return nil
	}
	store, err := results.Open(cfg, log.With().Str("component", "results").Logger())
	if err != nil {
		log.Warn().Err(err).Msg("Results store unavailable, races will not be recorded")
		return nil
	}
	return store
}

// runHeadless lets the autopilot drive the player until the race finishes
// or the tick limit runs out, then prints the standings.
func runHeadless(w *race.World, limit int, log zerolog.Logger) {
	ap := race.NewAutopilot(w)
	for i := 0; i < limit && w.Phase != race.PhaseFinished; i++ {
		w.Step(ap)
	}
	if w.Phase != race.PhaseFinished {
		log.Warn().Int("ticks", w.Tick).Msg("Tick limit reached before the race finished")
	}

	fmt.Printf("%s, seed %d, %d ticks\n", w.Track.Name, w.Seed(), w.RaceTicks)
	for i, s := range w.Standings() {
		who := fmt.Sprintf("cpu %d", s.ID)
		if s.IsPlayer {
			who = "player"
		}
		fmt.Printf("%d. %-7s laps %d  progress %4d  best %s\n", i+1, who, s.Lap, s.Progress, game.FormatTicks(s.BestLap))
	}
}

func reportRecords(store *results.Manager, trackName string, log zerolog.Logger) {
	ctx := context.Background()
	laps, err := store.BestLaps(ctx, trackName, 1)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read lap records")
		return
	}
	wins, total, err := store.PlayerRecord(ctx, trackName)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read player record")
		return
	}
	ev := log.Info().Str("track", trackName).Int64("wins", wins).Int64("races", total)
	if len(laps) > 0 {
		ev = ev.Int("recordCar", laps[0].CarID).Str("recordLap", game.FormatTicks(laps[0].Ticks))
	}
	ev.Msg("Track records")

	recent, err := store.Recent(ctx, 5)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read recent races")
		return
	}
	for _, r := range recent {
		log.Debug().
			Str("track", r.Track).
			Time("started", r.StartedAt).
			Int("winner", r.WinnerID).
			Bool("playerWon", r.PlayerWon).
			Msg("Recent race")
	}
}
