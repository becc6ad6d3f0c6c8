package game

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"racer/internal/config"
	"racer/internal/race"
)

// Options configures a desktop race.
type Options struct {
	Window config.WindowConfig
	Audio  config.AudioConfig
	Demo   bool // start with the autopilot driving
	Log    zerolog.Logger
}

// RunDesktop opens a window and runs w at a fixed TickRate until the
// window closes. Rendering and audio only read per-frame snapshots.
func RunDesktop(w *race.World, opts Options) {
	runtime.LockOSThread()
	log := opts.Log

	demo := opts.Demo
	paused := false
	frame := race.Frame{}
	w.Snapshot(&frame)

	window, err := initWindow(opts.Window, Title(w.Track.Name, frame.Signals, len(frame.Cars), paused, demo))
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	audio, err := InitAudio(opts.Audio)
	if err != nil {
		log.Warn().Err(err).Msg("Audio init failed, continuing without sound")
	}
	audio.StartEngine()
	defer audio.Close()
	audio.Attach(w.Events, w.Player.ID)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	br, bg, bb := Palette.Border.Floats()
	gl.ClearColor(br, bg, bb, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	rend.UploadTrack(w.Track.Terrain)

	cam := Camera{}
	w.Events.Subscribe(race.EventWallHit, func(e race.Event) {
		if e.Vehicle == w.Player.ID {
			cam.AddShake(WallShake, WallShakeTime)
		}
	})
	w.Events.Subscribe(race.EventCarHit, func(e race.Event) {
		if e.Vehicle == w.Player.ID || e.Other == w.Player.ID {
			cam.AddShake(CarShake, CarShakeTime)
		}
	})

	kb := NewKeyboard(window)
	ap := race.NewAutopilot(w)
	input := func() race.Input {
		if demo {
			return ap
		}
		return kb
	}

	var sprites []float32
	acc := 0.0
	frames := 0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.25 {
			dt = 0.25
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if kb.JustPressed(glfw.KeyP) {
			paused = !paused
		}
		if kb.JustPressed(glfw.KeyF2) {
			demo = !demo
			log.Info().Bool("demo", demo).Msg("Autopilot toggled")
		}
		if kb.JustPressed(glfw.KeyR) && w.Phase == race.PhaseFinished {
			w.Reset()
			ap = race.NewAutopilot(w)
			log.Info().Str("track", w.Track.Name).Msg("Race restarted")
		}

		// Fixed-step simulation; a long stall drops time instead of
		// fast-forwarding the race.
		acc += dt
		steps := 0
		for acc >= TickSeconds && steps < MaxCatchUp {
			if !paused {
				w.Step(input())
			}
			acc -= TickSeconds
			steps++
		}
		if steps == MaxCatchUp {
			acc = 0
		}

		w.Snapshot(&frame)
		audio.SetSpeed(frame.Signals.Speed)

		frames++
		if frames%TitleRefresh == 0 {
			window.SetTitle(Title(w.Track.Name, frame.Signals, len(frame.Cars), paused, demo))
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		cam.Fit(frame.View, fbW, fbH)
		cam.UpdateShake(dt, w.Seed()^uint64(now*1000))

		brightness := float32(1.0)
		if frame.Signals.Phase == race.PhaseCountdown || paused {
			brightness = 0.6
		}

		rend.BeginFrame(fbW, fbH)
		rend.DrawTrack(cam, fbW, fbH, brightness)
		sprites = CarSprites(&frame, sprites)
		rend.DrawCars(sprites, cam, fbW, fbH)

		window.SwapBuffers()
	}
}
