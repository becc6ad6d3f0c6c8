package game

import (
	"math"

	"racer/internal/race"
)

type Camera struct {
	X, Y float64 // world-pixel space, camera centre
	Zoom float64 // screen pixels per world pixel

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world pixels
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// Fit centres the camera on the race viewport and picks the largest zoom
// that shows all of it. Whole zoom factors are preferred so track pixels
// stay square.
func (c *Camera) Fit(vp race.Viewport, fbW, fbH int) {
	c.X = float64(vp.X) + float64(vp.W)*0.5
	c.Y = float64(vp.Y) + float64(vp.H)*0.5
	if vp.W <= 0 || vp.H <= 0 {
		c.Zoom = 1
		return
	}
	z := math.Min(float64(fbW)/float64(vp.W), float64(fbH)/float64(vp.H))
	if z >= 1 {
		z = math.Floor(z)
	}
	c.Zoom = z
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := race.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = mag * float64(rr.Range(-1000, 1000)) / 1000
	c.ShakeY = mag * float64(rr.Range(-1000, 1000)) / 1000
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
