package results

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"racer/internal/config"
	"racer/internal/race"
)

// Manager owns the results database connection.
type Manager struct {
	DB     *gorm.DB
	Driver string
	Logger zerolog.Logger
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

// Open connects to the configured database and migrates the schema. An
// empty sqlite path opens a private in-memory database.
func Open(cfg config.ResultsConfig, log zerolog.Logger) (*Manager, error) {
	m := &Manager{Driver: cfg.Driver, Logger: log}

	var err error
	switch cfg.Driver {
	case "postgres":
		m.Logger.Debug().Msg("Connecting to Postgres results DB")
		m.DB, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gormConfig())
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			path = ":memory:"
		}
		m.DB, err = gorm.Open(sqlite.Open(path), gormConfig())
		if err == nil && path == ":memory:" {
			// Every pooled connection would get its own empty database.
			sqlDB, dbErr := m.DB.DB()
			if dbErr != nil {
				return nil, fmt.Errorf("failed to access sql interface: %w", dbErr)
			}
			sqlDB.SetMaxOpenConns(1)
		}
		m.Logger.Debug().Str("path", path).Msg("Using SQLite results DB")
	default:
		return nil, fmt.Errorf("unknown results driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open results DB: %w", err)
	}

	if err := m.DB.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate results schema: %w", err)
	}
	return m, nil
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts a race with its standings and lap times.
func (m *Manager) Save(ctx context.Context, r *Race) error {
	if err := m.DB.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to save race: %w", err)
	}
	m.Logger.Info().Uint("id", r.ID).Str("track", r.Track).Int("winner", r.WinnerID).Msg("Race result saved")
	return nil
}

// BestLaps returns the fastest laps ever driven on a track.
func (m *Manager) BestLaps(ctx context.Context, track string, limit int) ([]LapTime, error) {
	var laps []LapTime
	err := m.DB.WithContext(ctx).
		Joins("JOIN races ON races.id = lap_times.race_id").
		Where("races.track = ? AND races.deleted_at IS NULL", track).
		Order("lap_times.ticks ASC, lap_times.id ASC").
		Limit(limit).
		Find(&laps).Error
	if err != nil {
		return nil, fmt.Errorf("error getting best laps: %w", err)
	}
	return laps, nil
}

// Recent returns the latest races, newest first, with their standings.
func (m *Manager) Recent(ctx context.Context, limit int) ([]Race, error) {
	var races []Race
	err := m.DB.WithContext(ctx).
		Preload("Standings", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&races).Error
	if err != nil {
		return nil, fmt.Errorf("error getting recent races: %w", err)
	}
	return races, nil
}

// PlayerRecord counts the player's wins out of all races on a track.
func (m *Manager) PlayerRecord(ctx context.Context, track string) (wins, total int64, err error) {
	db := m.DB.WithContext(ctx).Model(&Race{}).Where("track = ?", track)
	if err = db.Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("error counting races: %w", err)
	}
	err = m.DB.WithContext(ctx).Model(&Race{}).Where("track = ? AND player_won = ?", track, true).Count(&wins).Error
	if err != nil {
		return 0, 0, fmt.Errorf("error counting wins: %w", err)
	}
	return wins, total, nil
}

// Recorder collects lap times from a World's event bus and turns the
// finished race into a Race row.
type Recorder struct {
	w       *race.World
	started time.Time
	laps    []LapTime
}

// NewRecorder subscribes to w's lap events.
func NewRecorder(w *race.World) *Recorder {
	r := &Recorder{w: w, started: time.Now().UTC()}
	w.Events.Subscribe(race.EventRaceStart, func(race.Event) {
		r.started = time.Now().UTC()
		r.laps = r.laps[:0]
	})
	w.Events.Subscribe(race.EventLap, r.onLap)
	return r
}

func (r *Recorder) onLap(e race.Event) {
	cars := r.w.Cars()
	if e.Vehicle < 0 || e.Vehicle >= len(cars) {
		return
	}
	v := cars[e.Vehicle]
	r.laps = append(r.laps, LapTime{
		CarID:    v.ID,
		IsPlayer: v.IsPlayer,
		Lap:      e.Data,
		Ticks:    v.LastLap,
	})
}

// Result builds the row for the race as it stands.
func (r *Recorder) Result() *Race {
	w := r.w
	out := &Race{
		Track:          w.Track.Name,
		Seed:           int64(w.Seed()),
		LapTarget:      w.Tuning.LapTarget,
		Cars:           len(w.Cars()),
		WinnerID:       w.Winner,
		PlayerWon:      w.Winner == w.Player.ID,
		PlayerPosition: w.PlayerPosition(),
		RaceTicks:      w.RaceTicks,
		StartedAt:      r.started,
		LapTimes:       append([]LapTime(nil), r.laps...),
	}
	for i, s := range w.Standings() {
		out.Standings = append(out.Standings, Standing{
			Position:   i + 1,
			CarID:      s.ID,
			IsPlayer:   s.IsPlayer,
			Laps:       s.Lap,
			Progress:   s.Progress,
			BestLap:    s.BestLap,
			FinishedAt: s.FinishedAt,
		})
	}
	return out
}
