//go:build headless

// audio_backend_headless.go - build-tag counterpart to audio_backend_oto.go
//
// Mirrors the teacher's own `//go:build headless` split (audio_backend_oto.go
// carries `!headless`) for environments with no audio device - CI runners,
// containers - where linking oto's platform audio libraries isn't possible.
// NewOtoSink always fails here so main.go's fallback-to-HeadlessSink
// path (spec.md §7) is exercised instead of a cgo/platform build failure.
package main

import "errors"

type OtoSink struct{}

func NewOtoSink() (*OtoSink, error) {
	return nil, errors.New("audio: built with the headless tag, no live backend available")
}

func (*OtoSink) Run(q *SampleQueue) error {
	return HeadlessSink{}.Run(q)
}
