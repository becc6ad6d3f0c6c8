package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"racer/internal/config"
	"racer/internal/race"
)

// Audio plays the engine drone and the one-shot race effects. A nil *Audio
// is silent.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	engine oto.Player
	volume float64

	pitch    atomic.Uint64 // float64 bits, engine drone Hz
	lastBump atomic.Int64  // unix nanos of the last bump effect
}

// InitAudio opens the output device. It returns nil and no error when audio
// is disabled in cfg.
func InitAudio(cfg config.AudioConfig) (*Audio, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	a := &Audio{ctx: ctx, ready: ready, volume: clampF(cfg.Volume, 0, 1)}
	a.pitch.Store(math.Float64bits(EngineIdleHz))
	return a, nil
}

// StartEngine waits for the device and starts the looping drone.
func (a *Audio) StartEngine() {
	if a == nil {
		return
	}
	<-a.ready
	a.engine = a.ctx.NewPlayer(&engineReader{audio: a, freq: EngineIdleHz})
	a.engine.SetVolume(a.volume * 0.5)
	a.engine.Play()
}

// SetSpeed retunes the drone for the player's current speed. Safe to call
// from the simulation goroutine while oto reads.
func (a *Audio) SetSpeed(speed int) {
	if a == nil {
		return
	}
	a.pitch.Store(math.Float64bits(EnginePitch(speed)))
}

// Play fires a one-shot effect on its own player.
func (a *Audio) Play(kind SoundKind) {
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// bump plays a wall or car impact at most once per BumpRateLimit, since
// a car grinding a wall reports a hit every tick.
func (a *Audio) bump(kind SoundKind) {
	now := time.Now().UnixNano()
	last := a.lastBump.Load()
	if float64(now-last) < BumpRateLimit*float64(time.Second) {
		return
	}
	if a.lastBump.CompareAndSwap(last, now) {
		a.Play(kind)
	}
}

// Attach plays effects for the player's race events.
func (a *Audio) Attach(bus *race.EventBus, player int) {
	if a == nil {
		return
	}
	bus.SubscribeAll(func(e race.Event) {
		switch e.Type {
		case race.EventRaceStart:
			a.Play(SoundStart)
		case race.EventFinish:
			a.Play(SoundFinish)
		case race.EventLap:
			if e.Vehicle == player {
				a.Play(SoundLap)
			}
		case race.EventCheckpoint:
			if e.Vehicle == player {
				a.Play(SoundCheckpoint)
			}
		case race.EventWallHit:
			if e.Vehicle == player {
				a.bump(SoundWallBump)
			}
		case race.EventCarHit:
			if e.Vehicle == player || e.Other == player {
				a.bump(SoundCarHit)
			}
		case race.EventRescue:
			a.Play(SoundRescue)
		}
	})
}

// Close stops the drone.
func (a *Audio) Close() {
	if a == nil || a.engine == nil {
		return
	}
	a.engine.Close()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader streams the drone forever. The frequency glides toward the
// stored pitch so speed changes don't click.
type engineReader struct {
	audio *Audio
	phase float64
	freq  float64
}

func (r *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	target := math.Float64frombits(r.audio.pitch.Load())
	for i := 0; i < samples; i++ {
		r.freq += (target - r.freq) * 0.0008
		r.phase += r.freq / SampleRate
		if r.phase > 1<<20 {
			r.phase -= 1 << 20
		}
		putStereoF32(p, i, engineSample(r.phase))
	}
	return samples * 8, nil
}
