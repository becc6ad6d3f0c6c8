package game

import "racer/internal/race"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{
		R: uint8(clamp(int(c.R)+dr, 0, 255)),
		G: uint8(clamp(int(c.G)+dg, 0, 255)),
		B: uint8(clamp(int(c.B)+db, 0, 255)),
	}
}

// Floats returns the colour as 0..1 channels.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

var Palette = struct {
	Road       RGB
	RoadLine   RGB
	Grass      RGB
	GrassPatch RGB
	Wall       RGB
	WallTop    RGB
	FinishA    RGB
	FinishB    RGB
	Border     RGB
	Player     RGB
	Window     RGB
	Stunned    RGB
	Recovering RGB
}{
	Road:       RGB{R: 60, G: 66, B: 79},
	RoadLine:   RGB{R: 214, G: 190, B: 153},
	Grass:      RGB{R: 96, G: 140, B: 70},
	GrassPatch: RGB{R: 82, G: 122, B: 60},
	Wall:       RGB{R: 153, G: 144, B: 133},
	WallTop:    RGB{R: 195, G: 174, B: 142},
	FinishA:    RGB{R: 240, G: 240, B: 240},
	FinishB:    RGB{R: 20, G: 20, B: 20},
	Border:     RGB{R: 0, G: 0, B: 0},
	Player:     RGB{R: 220, G: 60, B: 50},
	Window:     RGB{R: 140, G: 140, B: 140},
	Stunned:    RGB{R: 255, G: 210, B: 110},
	Recovering: RGB{R: 190, G: 170, B: 255},
}

// aiColours tints the AI cars in grid order.
var aiColours = []RGB{
	{R: 60, G: 110, B: 220},
	{R: 240, G: 200, B: 40},
	{R: 60, G: 180, B: 90},
	{R: 200, G: 90, B: 200},
	{R: 240, G: 140, B: 40},
	{R: 80, G: 200, B: 210},
}

// CarColour is the body colour for a vehicle ID. ID 0 is the player.
func CarColour(id int) RGB {
	if id <= 0 {
		return Palette.Player
	}
	return aiColours[(id-1)%len(aiColours)]
}

// TerrainColour picks the colour of one track pixel. The checker on the
// finish line and the grass speckle are derived from the pixel position.
func TerrainColour(c race.TerrainClass, x, y int) RGB {
	switch c {
	case race.ClassRoad:
		return Palette.Road
	case race.ClassGrass:
		if (x*7+y*13)%11 == 0 {
			return Palette.GrassPatch
		}
		return Palette.Grass
	case race.ClassFinish:
		if (x/4+y/4)%2 == 0 {
			return Palette.FinishA
		}
		return Palette.FinishB
	case race.ClassWall:
		if x%race.TileSize == 0 || y%race.TileSize == 0 {
			return Palette.Wall
		}
		return Palette.WallTop
	}
	return Palette.Border
}
