package race

// Screen defaults, matching the 320x240 playfield window of the cabinet.
const (
	DefaultViewW = 320
	DefaultViewH = 240
	SpriteSize   = 16
)

// Viewport is the visible window onto the playfield, in pixels.
type Viewport struct {
	X, Y int
	W, H int
}

// Follow centres the view on (cx, cy) without showing past the map edge.
func (vp *Viewport) Follow(cx, cy, worldW, worldH int) {
	vp.X = clampInt(cx-vp.W/2, 0, worldW-vp.W)
	vp.Y = clampInt(cy-vp.H/2, 0, worldH-vp.H)
}

// ToScreen converts a sprite centre to its top-left corner on screen.
func (vp Viewport) ToScreen(cx, cy int) (int, int) {
	return cx - SpriteSize/2 - vp.X, cy - SpriteSize/2 - vp.Y
}

// Visible reports whether any part of a sprite centred at (cx, cy) is on
// screen.
func (vp Viewport) Visible(cx, cy int) bool {
	sx, sy := vp.ToScreen(cx, cy)
	return sx > -SpriteSize && sy > -SpriteSize && sx < vp.W && sy < vp.H
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
