package results

import (
	"time"

	"gorm.io/gorm"
)

// Models lists every table the store migrates.
var Models = []interface{}{
	&Race{},
	&Standing{},
	&LapTime{},
}

// Race is one finished race.
type Race struct {
	gorm.Model
	Track          string `gorm:"size:100;index:idx_race_track"`
	Seed           int64  // race seed, bit-cast from uint64
	LapTarget      int
	Cars           int
	WinnerID       int // vehicle ID, 0 is the player
	PlayerWon      bool
	PlayerPosition int
	RaceTicks      int
	StartedAt      time.Time `gorm:"index:idx_race_start"`

	Standings []Standing
	LapTimes  []LapTime
}

// Standing is one car's final place.
type Standing struct {
	ID         uint `gorm:"primarykey"`
	RaceID     uint `gorm:"index"`
	Position   int
	CarID      int
	IsPlayer   bool
	Laps       int
	Progress   int
	BestLap    int // ticks
	FinishedAt int // race tick, 0 if the car did not finish
}

// LapTime is a single completed lap.
type LapTime struct {
	ID       uint `gorm:"primarykey"`
	RaceID   uint `gorm:"index"`
	CarID    int
	IsPlayer bool
	Lap      int
	Ticks    int `gorm:"index:idx_lap_ticks"`
}
