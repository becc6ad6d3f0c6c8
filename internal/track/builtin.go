package track

import "racer/internal/race"

// Built-in circuit size in tiles (512x384 pixels).
const (
	BuiltinWidth  = 64
	BuiltinHeight = 48
)

// Tile IDs shared by every track. IDs between FirstMaskTile and
// FinishFirst are silhouette tiles with per-pixel masks.
const (
	TileVoid      uint8 = 0
	TileRoad      uint8 = 1
	TileGrass     uint8 = 2
	TileWall      uint8 = 3
	FirstMaskTile uint8 = 4
	FinishFirst   uint8 = 243
	FinishLast    uint8 = 248
)

// roundRect is an axis-aligned rectangle with rounded corners, in pixels.
type roundRect struct {
	x0, y0, x1, y1, r int
}

// contains tests the centre of pixel (x, y). Coordinates are doubled so
// the half-pixel centre stays integral.
func (rr roundRect) contains(x, y int) bool {
	px, py := 2*x+1, 2*y+1
	x0, y0, x1, y1, r := 2*rr.x0, 2*rr.y0, 2*rr.x1, 2*rr.y1, 2*rr.r
	if px < x0 || px > x1 || py < y0 || py > y1 {
		return false
	}
	cx := clamp(px, x0+r, x1-r)
	cy := clamp(py, y0+r, y1-r)
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
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

// The oval: a rounded outer wall, a rounded infield and a grass verge on
// the inside of the road.
var (
	ovalOuter  = roundRect{24, 24, 488, 360, 96}
	ovalInner  = roundRect{104, 104, 408, 280, 32}
	ovalVerge  = roundRect{92, 92, 420, 292, 44}
	ovalFinish = race.Gate{X0: 32, Y0: 3, X1: 32, Y1: 12}
)

func ovalPixel(x, y int) race.TerrainClass {
	switch {
	case !ovalOuter.contains(x, y), ovalInner.contains(x, y):
		return race.ClassWall
	case ovalVerge.contains(x, y):
		return race.ClassGrass
	}
	return race.ClassRoad
}

// Builtin returns the stock oval, raced counter-clockwise from the top
// straight. It needs no asset files.
func Builtin() *race.Track {
	t := Rasterize(BuiltinWidth, BuiltinHeight, ovalPixel)
	for ty := ovalFinish.Y0; ty <= ovalFinish.Y1; ty++ {
		for tx := ovalFinish.X0; tx <= ovalFinish.X1; tx++ {
			id := t.Tiles[ty*t.Width+tx]
			if id == TileRoad || id == TileGrass {
				t.SetTile(tx, ty, FinishFirst)
			}
		}
	}

	return &race.Track{
		Name:    "oval",
		Terrain: t,
		Waypoints: []race.Point{
			{X: 256, Y: 64}, {X: 150, Y: 64}, {X: 84, Y: 84},
			{X: 64, Y: 192}, {X: 84, Y: 300}, {X: 150, Y: 320},
			{X: 256, Y: 320}, {X: 362, Y: 320}, {X: 428, Y: 300},
			{X: 448, Y: 192}, {X: 428, Y: 84}, {X: 362, Y: 64},
		},
		Gates: []race.Gate{
			ovalFinish,
			{X0: 3, Y0: 24, X1: 12, Y1: 24},
			{X0: 32, Y0: 35, X1: 32, Y1: 44},
			{X0: 51, Y0: 24, X1: 60, Y1: 24},
		},
		Grid: []race.GridSlot{
			{X: 244, Y: 44, Angle: 64},
			{X: 244, Y: 76, Angle: 64},
			{X: 222, Y: 52, Angle: 64},
			{X: 222, Y: 84, Angle: 64},
			{X: 200, Y: 44, Angle: 64},
			{X: 200, Y: 76, Angle: 64},
		},
	}
}

type maskKey struct {
	mask  [8]uint8
	class race.TerrainClass
}

// Rasterize builds a terrain from a per-pixel classifier. Uniform tiles
// use the shared road, grass and wall IDs; tiles mixing wall with open
// ground get a silhouette tile, deduplicated by mask. When the silhouette
// IDs run out the tile falls back to its majority class.
func Rasterize(w, h int, pixel func(x, y int) race.TerrainClass) *race.Terrain {
	t := race.NewTerrain(w, h)
	t.Classes[TileVoid] = race.ClassWall
	t.Classes[TileRoad] = race.ClassRoad
	t.Classes[TileGrass] = race.ClassGrass
	t.Classes[TileWall] = race.ClassWall
	for id := int(FinishFirst); id <= int(FinishLast); id++ {
		t.Classes[id] = race.ClassFinish
	}
	t.FinishFirst, t.FinishLast = FinishFirst, FinishLast

	ids := make(map[maskKey]uint8)
	next := FirstMaskTile
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			var key maskKey
			walls, grass, road := 0, 0, 0
			for py := 0; py < race.TileSize; py++ {
				for px := 0; px < race.TileSize; px++ {
					switch pixel(tx*race.TileSize+px, ty*race.TileSize+py) {
					case race.ClassWall:
						walls++
						key.mask[py] |= 0x80 >> uint(px)
					case race.ClassGrass:
						grass++
					default:
						road++
					}
				}
			}
			open := race.ClassRoad
			openID := TileRoad
			if grass > road {
				open, openID = race.ClassGrass, TileGrass
			}

			switch {
			case walls == race.TileSize*race.TileSize:
				t.SetTile(tx, ty, TileWall)
			case walls == 0:
				t.SetTile(tx, ty, openID)
			default:
				key.class = open
				id, ok := ids[key]
				if !ok {
					if next >= FinishFirst {
						if walls*2 > race.TileSize*race.TileSize {
							t.SetTile(tx, ty, TileWall)
						} else {
							t.SetTile(tx, ty, openID)
						}
						continue
					}
					id = next
					next++
					ids[key] = id
					t.Classes[id] = open
					t.Masks[id] = key.mask
				}
				t.SetTile(tx, ty, id)
			}
		}
	}
	return t
}
