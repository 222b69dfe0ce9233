// audio_sink.go - the consumer side of the sample queue, spec.md §5/§6
//
// AudioSink abstracts "what drains SampleQueue": the live oto backend, a
// headless no-op used for fuzzing/CI, a raw-PCM file writer, and a decimal
// text writer for the "-o file.txt" alternative sink spec.md §6 mentions.
// Exactly one of these runs per Machine.Run call, on its own goroutine,
// observing only the queue - never the core state, per spec.md §5's
// "the audio thread must not observe or mutate it".
package main

// AudioSink drains frames from q until it closes (Pop returns ok=false),
// returning any terminal error. player.go runs this on its own goroutine.
type AudioSink interface {
	Run(q *SampleQueue) error
}

// HeadlessSink discards every frame. Used when no -o path is given and no
// live backend is available (spec.md §7: "headless / file-sink operation
// remains available if chosen via -o", and this is the degenerate case of
// neither).
type HeadlessSink struct{}

func (HeadlessSink) Run(q *SampleQueue) error {
	for {
		if _, ok := q.Pop(); !ok {
			return nil
		}
	}
}
