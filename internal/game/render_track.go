package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/race"
)

// TrackPixels paints every pixel of the terrain by class into an RGBA
// buffer, one texel per world pixel.
func TrackPixels(t *race.Terrain) ([]uint8, int, int) {
	w, h := t.PixelWidth(), t.PixelHeight()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := TerrainColour(t.ClassAt(x, y), x, y)
			i := (y*w + x) * 4
			pix[i+0] = col.R
			pix[i+1] = col.G
			pix[i+2] = col.B
			pix[i+3] = 255
		}
	}
	return pix, w, h
}

// UploadTrack replaces the playfield texture with t.
func (r *Renderer) UploadTrack(t *race.Terrain) {
	pix, w, h := TrackPixels(t)
	if r.trackTex == 0 {
		gl.GenTextures(1, &r.trackTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.trackTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	r.mapW, r.mapH = w, h
}

// DrawTrack draws the playfield quad. Brightness below 1 dims the track
// while the race has not started.
func (r *Renderer) DrawTrack(cam Camera, fbW, fbH int, brightness float32) {
	if r.trackTex == 0 {
		return
	}
	cx, cy := cam.EffectivePos()
	gl.UseProgram(r.trackProg)
	gl.BindVertexArray(r.trackVAO)
	gl.Uniform2f(r.uMapSize, float32(r.mapW), float32(r.mapH))
	gl.Uniform2f(r.uCamera, float32(cx), float32(cy))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.Uniform1f(r.uBrightness, brightness)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.trackTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
