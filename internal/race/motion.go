package race

// Controls is one tick of driving intent.
type Controls struct {
	Left, Right     bool
	Thrust, Reverse bool
}

// Rotate applies steering. Left grows the angle (counter-clockwise).
func Rotate(v *Vehicle, c Controls, rate uint8) {
	if c.Left {
		v.Angle += rate
	}
	if c.Right {
		v.Angle -= rate
	}
}

// ApplyThrust pushes the car along its heading. Reverse pushes the other
// way at half strength.
func ApplyThrust(v *Vehicle, c Controls, shift int) {
	s, co := Sin(v.Angle), Cos(v.Angle)
	if c.Thrust {
		v.Vel.X -= s >> shift
		v.Vel.Y -= co >> shift
	}
	if c.Reverse {
		v.Vel.X += s >> (shift + 1)
		v.Vel.Y += co >> (shift + 1)
	}
}

// decay removes v>>shift from v, at least one unit while v is nonzero.
func decay(v int32, shift int) int32 {
	if v == 0 {
		return 0
	}
	d := v >> shift
	if d == 0 {
		if v > 0 {
			d = 1
		} else {
			d = -1
		}
	}
	return v - d
}

// ApplyFriction bleeds velocity on both axes. Grass adds a second, heavier
// decay. Anything left inside the deadzone snaps to zero.
func ApplyFriction(v *Vehicle, tu Tuning, under TerrainClass) {
	v.Vel.X = decay(v.Vel.X, tu.FrictionShift)
	v.Vel.Y = decay(v.Vel.Y, tu.FrictionShift)
	if under == ClassGrass {
		v.Vel.X = decay(v.Vel.X, tu.GrassDragShift)
		v.Vel.Y = decay(v.Vel.Y, tu.GrassDragShift)
	}
	if abs32(v.Vel.X) < tu.Deadzone {
		v.Vel.X = 0
	}
	if abs32(v.Vel.Y) < tu.Deadzone {
		v.Vel.Y = 0
	}
}

// Integrate runs one physics tick for a vehicle whose steering has already
// been applied: thrust (unless stunned), friction, per-axis terrain
// collision and the bounds clamp. It reports whether a wall was hit.
func Integrate(v *Vehicle, c Controls, shift int, t *Terrain, tu Tuning) bool {
	if v.Stun == 0 {
		ApplyThrust(v, c, shift)
	} else {
		v.Stun--
	}
	ApplyFriction(v, tu, t.CenterClass(v))
	hit := MoveAndCollide(v, t, tu)
	ClampToBounds(v, t, tu)
	return hit
}
