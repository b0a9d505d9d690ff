// Package assets holds the shell's sounds and fonts. Everything is generated
// in code; the game ships no binary assets.
package assets

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const sampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// Face is the font used by the HUD and the wind panel.
var Face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

type tone struct {
	freq   float64
	start  float64
	length float64
}

var chimeTones = []tone{
	{freq: 880, start: 0, length: 0.25},
	{freq: 1318.5, start: 0.08, length: 0.3},
}

// NewChimePlayer returns a player for the pickup chime.
func NewChimePlayer() *audio.Player {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(sampleRate)
	})
	p := audioContext.NewPlayerFromBytes(ChimePCM(sampleRate))
	p.SetVolume(0.5)
	return p
}

// ChimePCM renders the pickup chime as 16-bit little-endian stereo at rate.
func ChimePCM(rate int) []byte {
	var total float64
	for _, t := range chimeTones {
		total = math.Max(total, t.start+t.length)
	}
	frames := int(total * float64(rate))
	buf := make([]byte, frames*4)

	for i := 0; i < frames; i++ {
		at := float64(i) / float64(rate)
		var v float64
		for _, t := range chimeTones {
			local := at - t.start
			if local < 0 || local >= t.length {
				continue
			}
			env := math.Exp(-6*local/t.length) * math.Min(1, local*400)
			v += 0.35 * env * math.Sin(2*math.Pi*t.freq*local)
		}
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}
