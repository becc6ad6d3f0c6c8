package game

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/race"
)

// carMask is the top-down car shape, nose up. Each byte selects the
// channel it lights in the mask texture: b body, g glass, t tyre.
var carMask = [CarTexSize]string{
	".bbbbbb.",
	"tbbbbbbt",
	".gggggg.",
	".bbbbbb.",
	".bbbbbb.",
	".gggggg.",
	"tbbbbbbt",
	".bbbbbb.",
}

// carMaskPixels expands carMask into RGBA bytes. Body goes in red, glass in
// green and tyres in blue so one texture serves every car colour.
func carMaskPixels() []uint8 {
	pix := make([]uint8, CarTexSize*CarTexSize*4)
	for y, row := range carMask {
		for x := 0; x < CarTexSize; x++ {
			i := (y*CarTexSize + x) * 4
			switch row[x] {
			case 'b':
				pix[i+0] = 255
			case 'g':
				pix[i+1] = 255
			case 't':
				pix[i+2] = 255
			default:
				continue
			}
			pix[i+3] = 255
		}
	}
	return pix
}

func makeCarTexture() uint32 {
	pix := carMaskPixels()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, CarTexSize, CarTexSize, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

// angleRadians converts a race angle (0 = up, counter-clockwise) into the
// sprite rotation the car shader expects.
func angleRadians(a uint8) float32 {
	return float32(a) * (2 * math.Pi / 256)
}

// CarSprites appends one point sprite per visible car in f: world centre,
// size, colour and rotation (8 floats each). Stunned cars flash.
func CarSprites(f *race.Frame, buf []float32) []float32 {
	buf = buf[:0]
	for _, c := range f.Cars {
		if !f.View.Visible(c.X, c.Y) {
			continue
		}
		col := CarColour(c.ID)
		switch {
		case c.Stunned && f.Tick%8 < 4:
			col = Palette.Stunned
		case c.State == race.StateRecovering:
			col = col.Add(40, 40, 60)
		}
		r, g, b := col.Floats()
		buf = append(buf,
			float32(c.X), float32(c.Y), CarSprite,
			r, g, b, 1,
			angleRadians(c.Angle),
		)
	}
	return buf
}
