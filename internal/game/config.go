package game

import "racer/internal/race"

// Simulation clock.
const (
	TickRate     = 60
	TickSeconds  = 1.0 / TickRate
	MaxCatchUp   = 5 // ticks simulated per frame before the clock is dropped
	TitleRefresh = 15
)

// Window defaults. The playfield view is scaled by whole factors.
const (
	ViewWidth    = race.DefaultViewW
	ViewHeight   = race.DefaultViewH
	DefaultScale = 3
	MaxScale     = 8
)

// Car sprites.
const (
	CarSprite       = race.SpriteSize
	CarTexSize      = 8
	CarVisualAspect = 0.72
	MaxCarSprites   = 64
)

// Screen shake on impacts, in world pixels and seconds.
const (
	WallShake     = 1.5
	WallShakeTime = 0.12
	CarShake      = 1.0
	CarShakeTime  = 0.08
	BumpRateLimit = 0.1
)
