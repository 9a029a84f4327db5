package sink

import (
	"fmt"
	"io"

	"github.com/ausocean/line21/caption"
)

const framesPerSecond = 29.97

// SRTSink writes SubRip subtitle cues, pairing each display event's start
// frame with the frame its content stopped being shown (the next
// display/erase event on that channel, or pipeline shutdown).
//
// Grounded on SRTCaptionTrack's subtitle_start/end_frame tracking and
// _get_timecode in the reference decoder this package imitates.
type SRTSink struct {
	w       io.WriteCloser
	count   int
	pending map[string]pendingCue
}

type pendingCue struct {
	text       string
	startFrame int64
}

// NewSRTSink wraps w as an SRT cue writer.
func NewSRTSink(w io.WriteCloser) *SRTSink {
	return &SRTSink{w: w, pending: make(map[string]pendingCue)}
}

func (s *SRTSink) Handle(channel string, ev caption.Event) error {
	if p, open := s.pending[channel]; open {
		if err := s.flush(channel, p, ev.Frame); err != nil {
			return err
		}
		delete(s.pending, channel)
	}
	if ev.Kind == caption.EventDisplay && ev.Text != "" {
		s.pending[channel] = pendingCue{text: ev.Text, startFrame: ev.Frame}
	}
	return nil
}

func (s *SRTSink) flush(channel string, p pendingCue, endFrame int64) error {
	if endFrame <= p.startFrame {
		endFrame = p.startFrame + 1
	}
	s.count++
	_, err := fmt.Fprintf(s.w, "%d\n%s --> %s\n%s\n\n",
		s.count, srtTimecode(p.startFrame), srtTimecode(endFrame), p.text)
	return err
}

func srtTimecode(frame int64) string {
	totalSeconds := float64(frame) / framesPerSecond
	hours := int(totalSeconds) / 3600
	minutes := (int(totalSeconds) % 3600) / 60
	seconds := int(totalSeconds) % 60
	millis := int((totalSeconds - float64(int(totalSeconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func (s *SRTSink) Close() error { return s.w.Close() }
