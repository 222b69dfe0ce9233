// audio_backend_file.go - the "-o file" sinks: raw interleaved PCM and the
// alternative decimal-text format spec.md §6 names ("An alternative sink
// writes textual decimal samples one per line").
//
// Grounded on the teacher's file_io.go pattern of a thin io.Writer wrapper
// around the standard library - no codec library is warranted for a fixed
// interleaved-int16 or one-decimal-pair-per-line format (see DESIGN.md).
package main

import (
	"bufio"
	"fmt"
	"io"
)

// FilePCMSink drains the queue synchronously, writing raw little-endian
// interleaved stereo int16 samples - spec.md §4.6: "An output-file sink
// path drains the queue synchronously without blocking."
type FilePCMSink struct {
	w *bufio.Writer
}

func NewFilePCMSink(w io.Writer) *FilePCMSink {
	return &FilePCMSink{w: bufio.NewWriter(w)}
}

func (s *FilePCMSink) Run(q *SampleQueue) error {
	defer s.w.Flush()
	buf := make([]byte, 4)
	for {
		f, ok := q.Pop()
		if !ok {
			return s.w.Flush()
		}
		buf[0] = byte(f.L)
		buf[1] = byte(f.L >> 8)
		buf[2] = byte(f.R)
		buf[3] = byte(f.R >> 8)
		if _, err := s.w.Write(buf); err != nil {
			return err
		}
	}
}

// FileTextSink is the alternative decimal sink: one "left right" pair per
// line.
type FileTextSink struct {
	w *bufio.Writer
}

func NewFileTextSink(w io.Writer) *FileTextSink {
	return &FileTextSink{w: bufio.NewWriter(w)}
}

func (s *FileTextSink) Run(q *SampleQueue) error {
	defer s.w.Flush()
	for {
		f, ok := q.Pop()
		if !ok {
			return s.w.Flush()
		}
		if _, err := fmt.Fprintf(s.w, "%d %d\n", f.L, f.R); err != nil {
			return err
		}
	}
}
