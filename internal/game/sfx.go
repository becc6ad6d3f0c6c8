package game

import "math"

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundWallBump SoundKind = iota
	SoundCarHit
	SoundCheckpoint
	SoundLap
	SoundFinish
	SoundStart
	SoundRescue
)

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation with no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundWallBump:
		return genWallBump()
	case SoundCarHit:
		return genCarHit()
	case SoundCheckpoint:
		return genBlip(1320, 0.05)
	case SoundLap:
		return genChime([]float64{659.25, 987.77})
	case SoundFinish:
		return genChime([]float64{440, 554.37, 659.25, 880, 1108.73})
	case SoundStart:
		return genBlip(880, 0.25)
	case SoundRescue:
		return genBlip(520, 0.12)
	}
	return nil
}

// genWallBump: low filtered-noise thud with a short body tone.
func genWallBump() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xB0B)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 9)
		lp = lp*0.9 + lcg(&seed)*0.1
		thump := fm(t, 70, 0.5, 1.4) * math.Exp(-p*18)
		s := (lp*0.6 + thump*0.6) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCarHit: metallic FM clank, falling pitch.
func genCarHit() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.55, 0.1, 0.25)
		freq := 360 - 200*p
		s := fm(t, freq, 1.41, 3.2*(1-p)) * env * 0.45
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBlip: single clean tone, used for countdown and checkpoint cues.
func genBlip(freq, dur float64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.3, 0.6, 0.3)
		s := fm(t, freq, 1.0, 0.5) * env * 0.35
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genChime: ascending FM bells, each note ringing over the next.
func genChime(notes []float64) []byte {
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// Engine drone pitch range, in Hz.
const (
	EngineIdleHz = 42.0
	EngineTopHz  = 190.0
	EngineTopVel = 2048 // 8.8 speed that reaches EngineTopHz
)

// EnginePitch maps the player's 8.8 speed magnitude onto the drone frequency.
func EnginePitch(speed int) float64 {
	if speed < 0 {
		speed = 0
	}
	f := EngineIdleHz + (EngineTopHz-EngineIdleHz)*float64(speed)/EngineTopVel
	return clampF(f, EngineIdleHz, EngineTopHz)
}

// engineSample is one sample of the drone at the given phase (cycles):
// a saw with a sub-octave square for rumble.
func engineSample(phase float64) float64 {
	frac := phase - math.Floor(phase)
	saw := 2*frac - 1
	sub := 1.0
	if math.Mod(phase, 2) >= 1 {
		sub = -1
	}
	return softSat(saw*0.35 + sub*0.18)
}
