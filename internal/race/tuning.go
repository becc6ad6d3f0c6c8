package race

import "fmt"

// MaxShift bounds every shift field. Anything larger already rounds an
// 8.8 velocity to zero.
const MaxShift = 15

// Tuning holds every gameplay constant the simulation reads. Shifts are
// right-shift counts: a larger shift means a weaker effect.
type Tuning struct {
	// Motion.
	PlayerTurnRate int   `mapstructure:"playerTurnRate"`
	AITurnRate     int   `mapstructure:"aiTurnRate"`
	ThrustShift    int   `mapstructure:"thrustShift"`
	FrictionShift  int   `mapstructure:"frictionShift"`
	GrassDragShift int   `mapstructure:"grassDragShift"`
	Deadzone       int32 `mapstructure:"deadzone"`

	// Terrain collision.
	BounceImpulse  int32 `mapstructure:"bounceImpulse"`
	PushOutPx      int   `mapstructure:"pushOutPx"`
	ReboundStun    int   `mapstructure:"reboundStun"`
	BoundsMarginPx int   `mapstructure:"boundsMarginPx"`

	// Car to car collision.
	CarPrefilterPx int `mapstructure:"carPrefilterPx"`
	CarHitRadiusPx int `mapstructure:"carHitRadiusPx"`
	CarPushPx      int `mapstructure:"carPushPx"`
	ImpactJitter   int `mapstructure:"impactJitter"`

	// AI driver.
	ReachRadiusPx    int   `mapstructure:"reachRadiusPx"`
	OffsetPx         int   `mapstructure:"offsetPx"`
	StuckWindow      int   `mapstructure:"stuckWindow"`
	StuckThresholdPx int   `mapstructure:"stuckThresholdPx"`
	RecoveryTicks    int   `mapstructure:"recoveryTicks"`
	SharpTurn        uint8 `mapstructure:"sharpTurn"`
	BrainsPerTick    int   `mapstructure:"brainsPerTick"`
	StartDelay       int   `mapstructure:"startDelay"`
	StartStagger     int   `mapstructure:"startStagger"`

	// Rubberbanding.
	RubberbandPeriod int `mapstructure:"rubberbandPeriod"`
	RubberbandLead   int `mapstructure:"rubberbandLead"`
	BoostShift       int `mapstructure:"boostShift"`
	NormalShift      int `mapstructure:"normalShift"`
	SlowShift        int `mapstructure:"slowShift"`
	CrawlShift       int `mapstructure:"crawlShift"`

	// Race rules.
	CountdownTicks int `mapstructure:"countdownTicks"`
	LapTarget      int `mapstructure:"lapTarget"`
	RescueCooldown int `mapstructure:"rescueCooldown"`
}

// DefaultTuning returns the stock arcade feel.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerTurnRate: 4,
		AITurnRate:     3,
		ThrustShift:    3,
		FrictionShift:  4,
		GrassDragShift: 3,
		Deadzone:       4,

		BounceImpulse:  64,
		PushOutPx:      1,
		ReboundStun:    10,
		BoundsMarginPx: 8,

		CarPrefilterPx: 12,
		CarHitRadiusPx: 10,
		CarPushPx:      2,
		ImpactJitter:   6,

		ReachRadiusPx:    32,
		OffsetPx:         10,
		StuckWindow:      30,
		StuckThresholdPx: 3,
		RecoveryTicks:    45,
		SharpTurn:        32,
		BrainsPerTick:    0,
		StartDelay:       20,
		StartStagger:     15,

		RubberbandPeriod: 16,
		RubberbandLead:   1,
		BoostShift:       2,
		NormalShift:      3,
		SlowShift:        4,
		CrawlShift:       5,

		CountdownTicks: 240,
		LapTarget:      3,
		RescueCooldown: 120,
	}
}

// Validate rejects tunings that would break the simulation: out of range
// shift counts, negative stun, and windows that never elapse.
func (tu Tuning) Validate() error {
	shifts := []struct {
		name string
		v    int
	}{
		{"thrustShift", tu.ThrustShift},
		{"frictionShift", tu.FrictionShift},
		{"grassDragShift", tu.GrassDragShift},
		{"boostShift", tu.BoostShift},
		{"normalShift", tu.NormalShift},
		{"slowShift", tu.SlowShift},
		{"crawlShift", tu.CrawlShift},
	}
	for _, s := range shifts {
		if s.v < 0 || s.v > MaxShift {
			return fmt.Errorf("tuning.%s must be in [0, %d], got %d", s.name, MaxShift, s.v)
		}
	}

	atLeast := []struct {
		name string
		v    int
		min  int
	}{
		{"reboundStun", tu.ReboundStun, 0},
		{"impactJitter", tu.ImpactJitter, 0},
		{"brainsPerTick", tu.BrainsPerTick, 0},
		{"stuckWindow", tu.StuckWindow, 1},
		{"recoveryTicks", tu.RecoveryTicks, 1},
		{"rubberbandPeriod", tu.RubberbandPeriod, 1},
		{"lapTarget", tu.LapTarget, 1},
	}
	for _, a := range atLeast {
		if a.v < a.min {
			return fmt.Errorf("tuning.%s must be at least %d, got %d", a.name, a.min, a.v)
		}
	}
	return nil
}
