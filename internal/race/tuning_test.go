package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuningValidate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	tests := []struct {
		name   string
		mutate func(*Tuning)
		field  string
	}{
		{"negative thrust shift", func(tu *Tuning) { tu.ThrustShift = -1 }, "thrustShift"},
		{"friction shift past max", func(tu *Tuning) { tu.FrictionShift = MaxShift + 1 }, "frictionShift"},
		{"negative grass shift", func(tu *Tuning) { tu.GrassDragShift = -3 }, "grassDragShift"},
		{"negative boost shift", func(tu *Tuning) { tu.BoostShift = -1 }, "boostShift"},
		{"huge crawl shift", func(tu *Tuning) { tu.CrawlShift = 64 }, "crawlShift"},
		{"negative stun", func(tu *Tuning) { tu.ReboundStun = -1 }, "reboundStun"},
		{"negative jitter", func(tu *Tuning) { tu.ImpactJitter = -2 }, "impactJitter"},
		{"no stuck window", func(tu *Tuning) { tu.StuckWindow = 0 }, "stuckWindow"},
		{"no recovery", func(tu *Tuning) { tu.RecoveryTicks = 0 }, "recoveryTicks"},
		{"no rubberband period", func(tu *Tuning) { tu.RubberbandPeriod = 0 }, "rubberbandPeriod"},
		{"no laps", func(tu *Tuning) { tu.LapTarget = 0 }, "lapTarget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.mutate(&tu)
			err := tu.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "tuning."+tt.field)
		})
	}
}

func TestTuningValidateAcceptsEdges(t *testing.T) {
	tu := DefaultTuning()
	tu.ThrustShift = 0
	tu.CrawlShift = MaxShift
	tu.ReboundStun = 0
	tu.ImpactJitter = 0
	tu.BrainsPerTick = 0
	tu.StuckWindow = 1
	assert.NoError(t, tu.Validate())
}
