package race

import "fmt"

// TileSize is the edge of a square tile in pixels.
const TileSize = 8

type TerrainClass uint8

const (
	ClassRoad TerrainClass = iota
	ClassGrass
	ClassWall
	ClassFinish
)

func (c TerrainClass) String() string {
	switch c {
	case ClassRoad:
		return "road"
	case ClassGrass:
		return "grass"
	case ClassWall:
		return "wall"
	case ClassFinish:
		return "finish"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Terrain is the immutable tile map of a track: one byte tile ID per
// cell, a coarse class per ID and an 8x8 solid-pixel mask per ID.
type Terrain struct {
	Width, Height int // in tiles
	Tiles         []uint8
	Classes       [256]TerrainClass
	Masks         [256][8]uint8

	// Tile IDs in [FinishFirst, FinishLast] read as ClassFinish regardless
	// of their mask. FinishFirst > FinishLast disables the override.
	FinishFirst, FinishLast uint8
}

// NewTerrain returns a w*h map of tile 0 with every ID classed as wall.
func NewTerrain(w, h int) *Terrain {
	t := &Terrain{
		Width:       w,
		Height:      h,
		Tiles:       make([]uint8, w*h),
		FinishFirst: 1,
		FinishLast:  0,
	}
	for i := range t.Classes {
		t.Classes[i] = ClassWall
	}
	return t
}

// Validate reports structural problems that would make lookups unsafe.
func (t *Terrain) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("terrain size %dx%d", t.Width, t.Height)
	}
	if len(t.Tiles) != t.Width*t.Height {
		return fmt.Errorf("terrain has %d tiles, want %d", len(t.Tiles), t.Width*t.Height)
	}
	return nil
}

func (t *Terrain) PixelWidth() int  { return t.Width * TileSize }
func (t *Terrain) PixelHeight() int { return t.Height * TileSize }

// SetTile writes a tile ID; out of range cells are ignored.
func (t *Terrain) SetTile(tx, ty int, id uint8) {
	if tx < 0 || ty < 0 || tx >= t.Width || ty >= t.Height {
		return
	}
	t.Tiles[ty*t.Width+tx] = id
}

// TileAt returns the tile ID under a pixel and false when off the map.
func (t *Terrain) TileAt(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= t.PixelWidth() || y >= t.PixelHeight() {
		return 0, false
	}
	return t.Tiles[(y>>3)*t.Width+(x>>3)], true
}

func (t *Terrain) isFinish(id uint8) bool {
	return t.FinishFirst <= t.FinishLast && id >= t.FinishFirst && id <= t.FinishLast
}

// ClassAt classifies a single pixel. Anything off the map is a wall.
func (t *Terrain) ClassAt(x, y int) TerrainClass {
	id, ok := t.TileAt(x, y)
	if !ok {
		return ClassWall
	}
	if t.isFinish(id) {
		return ClassFinish
	}
	row := t.Masks[id][y&7]
	if row == 0 {
		return t.Classes[id]
	}
	if row&(0x80>>uint(x&7)) != 0 {
		return ClassWall
	}
	// An open pixel in a silhouetted wall tile is drivable.
	if c := t.Classes[id]; c != ClassWall {
		return c
	}
	return ClassRoad
}

// CenterClass is the class under a vehicle's centre pixel.
func (t *Terrain) CenterClass(v *Vehicle) TerrainClass {
	return t.ClassAt(v.PixelPos())
}

// sampleOffsets are the corners and edge midpoints of a 16x16 sprite,
// pulled 5px in from its centre.
var sampleOffsets = [8][2]int{
	{-5, -5}, {0, -5}, {5, -5},
	{-5, 0}, {5, 0},
	{-5, 5}, {0, 5}, {5, 5},
}

// IsColliding reports whether a car centred on (px, py) touches a wall.
func (t *Terrain) IsColliding(px, py int) bool {
	for _, o := range sampleOffsets {
		if t.ClassAt(px+o[0], py+o[1]) == ClassWall {
			return true
		}
	}
	return false
}
