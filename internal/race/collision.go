package race

// MoveAndCollide integrates velocity one axis at a time, X then Y, so a
// car grazing a wall slides along it. A blocked axis keeps its old
// coordinate, has its velocity replaced by a fixed bounce away from the
// wall and stuns the car. It reports whether either axis was blocked.
func MoveAndCollide(v *Vehicle, t *Terrain, tu Tuning) bool {
	hitX := moveAxis(v, t, tu, &v.Pos.X, &v.Vel.X)
	hitY := moveAxis(v, t, tu, &v.Pos.Y, &v.Vel.Y)
	return hitX || hitY
}

func moveAxis(v *Vehicle, t *Terrain, tu Tuning, pos, vel *int32) bool {
	if *vel == 0 {
		return false
	}
	old := *pos
	cand := old + (*vel >> VelToPosShift)
	if cand == old {
		return false
	}
	*pos = cand
	if !t.IsColliding(v.PixelPos()) {
		return false
	}

	dir := int32(1)
	if *vel > 0 {
		dir = -1
	}
	*vel = dir * tu.BounceImpulse
	*pos = old + dir*int32(tu.PushOutPx)*PosOne
	if t.IsColliding(v.PixelPos()) {
		*pos = old
	}
	v.Stun = tu.ReboundStun
	return true
}

// ClampToBounds keeps the sprite centre at least BoundsMarginPx inside the
// playfield.
func ClampToBounds(v *Vehicle, t *Terrain, tu Tuning) {
	m := int32(tu.BoundsMarginPx) * PosOne
	maxX := int32(t.PixelWidth())*PosOne - m - 1
	maxY := int32(t.PixelHeight())*PosOne - m - 1
	v.Pos.X = clamp32(v.Pos.X, m, maxX)
	v.Pos.Y = clamp32(v.Pos.Y, m, maxY)
}

func clamp32(x, lo, hi int32) int32 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CarsTouch runs the cheap Manhattan box first and the squared distance
// second.
func CarsTouch(a, b *Vehicle, tu Tuning) bool {
	ax, ay := a.PixelPos()
	bx, by := b.PixelPos()
	dx, dy := ax-bx, ay-by
	if dx > tu.CarPrefilterPx || dx < -tu.CarPrefilterPx || dy > tu.CarPrefilterPx || dy < -tu.CarPrefilterPx {
		return false
	}
	return dx*dx+dy*dy < tu.CarHitRadiusPx*tu.CarHitRadiusPx
}

// ResolveCarCollision exchanges momentum between two touching cars and
// shoves them apart. Two AI cars swap velocities outright; against the
// player the AI takes the player's velocity while the player keeps three
// quarters of its own. It returns false when the cars are not touching.
func ResolveCarCollision(a, b *Vehicle, t *Terrain, tu Tuning, rng *Rand) bool {
	if !CarsTouch(a, b, tu) {
		return false
	}

	switch {
	case a.IsPlayer && !b.IsPlayer:
		blendIntoPlayer(a, b)
	case b.IsPlayer && !a.IsPlayer:
		blendIntoPlayer(b, a)
	default:
		a.Vel, b.Vel = b.Vel, a.Vel
	}

	if tu.ImpactJitter > 0 {
		a.Angle += uint8(rng.Range(-tu.ImpactJitter, tu.ImpactJitter-1))
		b.Angle += uint8(rng.Range(-tu.ImpactJitter, tu.ImpactJitter-1))
	}

	ax, ay := a.PixelPos()
	bx, by := b.PixelPos()
	sx, sy := sign(ax-bx), sign(ay-by)
	if sx == 0 && sy == 0 {
		sx = 1
	}
	push := int32(tu.CarPushPx) * PosOne
	shove(a, t, int32(sx)*push, int32(sy)*push)
	shove(b, t, -int32(sx)*push, -int32(sy)*push)

	a.Stun = tu.ReboundStun
	b.Stun = tu.ReboundStun
	return true
}

func blendIntoPlayer(p, o *Vehicle) {
	pv, ov := p.Vel, o.Vel
	o.Vel = pv
	p.Vel.X = pv.X + (ov.X-pv.X)>>2
	p.Vel.Y = pv.Y + (ov.Y-pv.Y)>>2
}

// shove moves a car by (dx, dy) only if it lands somewhere drivable.
func shove(v *Vehicle, t *Terrain, dx, dy int32) {
	dest := Vec{X: v.Pos.X + dx, Y: v.Pos.Y + dy}
	if t.IsColliding(dest.Pixels()) {
		return
	}
	v.Pos = dest
}
