package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Track program.
	trackProg uint32
	trackVAO  uint32
	trackVBO  uint32
	trackTex  uint32
	mapW      int
	mapH      int

	uMapSize    int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTex        int32
	uBrightness int32

	// Car program.
	carProg uint32
	carVAO  uint32
	carVBO  uint32
	carTex  uint32

	carUCamera     int32
	carUZoom       int32
	carUResolution int32
	carUCarTex     int32
	carUCarAspect  int32
}

func NewRenderer() (*Renderer, error) {
	trackProg, err := linkProgram(trackVertSrc, trackFragSrc)
	if err != nil {
		return nil, fmt.Errorf("track program: %w", err)
	}
	carProg, err := linkProgram(carVertSrc, carFragSrc)
	if err != nil {
		gl.DeleteProgram(trackProg)
		return nil, fmt.Errorf("car program: %w", err)
	}

	r := &Renderer{
		trackProg: trackProg,
		carProg:   carProg,
	}

	// Track VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var tVAO, tVBO uint32
	gl.GenVertexArrays(1, &tVAO)
	gl.GenBuffers(1, &tVBO)
	gl.BindVertexArray(tVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, tVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.trackVAO = tVAO
	r.trackVBO = tVBO

	gl.UseProgram(trackProg)
	r.uMapSize = gl.GetUniformLocation(trackProg, gl.Str("uMapSize\x00"))
	r.uCamera = gl.GetUniformLocation(trackProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(trackProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(trackProg, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(trackProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)
	r.uBrightness = gl.GetUniformLocation(trackProg, gl.Str("uBrightness\x00"))
	gl.Uniform1f(r.uBrightness, 1.0)

	// Car VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var cVAO, cVBO uint32
	gl.GenVertexArrays(1, &cVAO)
	gl.GenBuffers(1, &cVBO)
	gl.BindVertexArray(cVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, cVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxCarSprites*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.carVAO = cVAO
	r.carVBO = cVBO

	gl.UseProgram(carProg)
	r.carUCamera = gl.GetUniformLocation(carProg, gl.Str("uCamera\x00"))
	r.carUZoom = gl.GetUniformLocation(carProg, gl.Str("uZoom\x00"))
	r.carUResolution = gl.GetUniformLocation(carProg, gl.Str("uResolution\x00"))
	r.carUCarTex = gl.GetUniformLocation(carProg, gl.Str("uCarTex\x00"))
	gl.Uniform1i(r.carUCarTex, 1)
	r.carUCarAspect = gl.GetUniformLocation(carProg, gl.Str("uCarAspect\x00"))
	gl.Uniform1f(r.carUCarAspect, CarVisualAspect)

	gl.ActiveTexture(gl.TEXTURE1)
	r.carTex = makeCarTexture()
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.trackVBO, r.carVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.trackVAO, r.carVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.trackProg, r.carProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.trackTex, r.carTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawCars uploads and draws a CarSprites buffer.
func (r *Renderer) DrawCars(buf []float32, cam Camera, fbW, fbH int) {
	n := len(buf) / 8
	if n == 0 {
		return
	}
	if n > MaxCarSprites {
		n = MaxCarSprites
	}
	cx, cy := cam.EffectivePos()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.carProg)
	gl.BindVertexArray(r.carVAO)
	gl.Uniform2f(r.carUCamera, float32(cx), float32(cy))
	gl.Uniform1f(r.carUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.carUResolution, float32(fbW), float32(fbH))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.carTex)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.carVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*8*4, gl.Ptr(&buf[0]))
	gl.DrawArrays(gl.POINTS, 0, int32(n))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Disable(gl.BLEND)
}
