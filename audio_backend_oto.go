//go:build !headless

// audio_backend_oto.go - live PCM output via ebitengine/oto v3
//
// Grounded on the teacher's audio_backend_oto.go: an io.Reader adapter
// handed to oto.NewPlayer, pulling samples from the shared queue instead of
// oto pushing a callback into our code. Unlike the teacher's float32 mono
// SoundChip ring, spc700player's DSP already produces signed 16-bit stereo
// frames (spec.md §6), so this uses oto.FormatSignedInt16LE with
// ChannelCount 2 and skips the float32 conversion entirely.
package main

import (
	"github.com/ebitengine/oto/v3"
)

// OtoSink is the live-audio AudioSink: spec.md §6's "32000 Hz, signed
// 16-bit, 2 channels" output stream, played through the host's default
// audio device.
type OtoSink struct {
	ctx *oto.Context
}

// NewOtoSink opens the host audio device at spc700player's fixed 32kHz
// stereo 16-bit format. Callers should fall back to HeadlessSink or a file
// sink (spec.md §7: "audio-backend unavailable... fatal at initialisation;
// headless/file-sink operation remains available") when this errors.
func NewOtoSink() (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRateHz,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0, // oto's platform default
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoSink{ctx: ctx}, nil
}

// Run pulls frames from q and feeds them to an oto.Player until the queue
// closes. It blocks the goroutine player.go spawns for the sink's
// lifetime, per spec.md §5's cooperative-backpressure model (oto.Player's
// own internal ring is the "callback slice" the queue capacity must cover).
func (s *OtoSink) Run(q *SampleQueue) error {
	reader := &queueReader{q: q, closed: make(chan struct{})}
	player := s.ctx.NewPlayer(reader)
	player.Play()
	<-reader.closed
	player.Close()
	return reader.err
}

// queueReader adapts SampleQueue's blocking Pop into the io.Reader oto
// wants: each Read call fills p with as many interleaved LE int16 stereo
// frames as fit, blocking on Pop for each frame, and returns early only
// when the queue closes.
type queueReader struct {
	q      *SampleQueue
	closed chan struct{}
	err    error
}

func (r *queueReader) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		f, ok := r.q.Pop()
		if !ok {
			select {
			case <-r.closed:
			default:
				close(r.closed)
			}
			return n, nil
		}
		p[n] = byte(f.L)
		p[n+1] = byte(f.L >> 8)
		p[n+2] = byte(f.R)
		p[n+3] = byte(f.R >> 8)
		n += 4
	}
	return n, nil
}
