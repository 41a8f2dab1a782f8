package speech

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// DefaultSampleRate is the rate of the provider's raw PCM output.
const DefaultSampleRate = 24000

// Clip is decoded mono audio, samples in [-1, 1).
type Clip struct {
	SampleRate int
	Samples    []float32
}

// Duration of the clip at its sample rate.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Decode turns raw mono signed 16-bit little-endian PCM into a Clip.
// A trailing odd byte is dropped.
func Decode(raw []byte, sampleRate int) Clip {
	n := len(raw) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(v) / 32768.0
	}
	return Clip{SampleRate: sampleRate, Samples: samples}
}

// PCM16 re-encodes the clip as s16le bytes.
func (c Clip) PCM16() []byte {
	out := make([]byte, 2*len(c.Samples))
	for i, s := range c.Samples {
		v := math.Round(float64(s) * 32768.0)
		v = max(math.MinInt16, min(math.MaxInt16, v))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
	}
	return out
}

// WAV renders the clip as a 16-bit mono RIFF/WAVE file.
func (c Clip) WAV() []byte {
	data := c.PCM16()
	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + len(data))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(c.SampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(c.SampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}
