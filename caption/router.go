package caption

import (
	"github.com/ausocean/line21/charset"
	"github.com/ausocean/line21/rowclassify"
)

// Router owns one Track per CC1-CC4 and their paired T1-T4 text channels,
// and dispatches each incoming row to the right Track based on the
// channel resolved from (field, style) plus the CEA-608 convention that
// a channel's text-mode control codes (Text Restart / Resume Text
// Display) hand that channel's subsequent bytes to its paired text
// channel until a caption-mode control code reclaims it.
type Router struct {
	tracks     map[charset.Channel]*Track
	inTextMode map[charset.Channel]bool
}

// NewRouter builds a Router with a fresh Track for every CC/T channel.
func NewRouter() *Router {
	r := &Router{
		tracks:     make(map[charset.Channel]*Track),
		inTextMode: make(map[charset.Channel]bool),
	}
	for _, c := range []charset.Channel{charset.CC1, charset.CC2, charset.CC3, charset.CC4,
		charset.T1, charset.T2, charset.T3, charset.T4} {
		r.tracks[c] = NewTrack(c)
	}
	return r
}

// Track returns the Router's Track instance for channel.
func (r *Router) Track(c charset.Channel) *Track { return r.tracks[c] }

// Dispatch routes one decoded row addressed to cc (a CC1-CC4 channel) to
// either cc's own Track or its paired text channel's Track, depending on
// whether cc is currently in text mode, and returns the channel the row
// was actually delivered to along with the events produced.
func (r *Router) Dispatch(cc charset.Channel, pair rowclassify.ClassifiedRow, frameIndex int64) (charset.Channel, []Event) {
	inText := r.inTextMode[cc]
	if pair.IsControl {
		switch pair.CodeID {
		case charset.CodeTextRestart, charset.CodeResumeTextDisplay:
			inText = true
		case charset.CodeResumeCaptionLoading, charset.CodeResumeDirectCaptioning, charset.CodeRollUp:
			inText = false
		}
	}
	r.inTextMode[cc] = inText

	target := cc
	if inText {
		target = charset.TextChannelFor(cc)
	}
	events := r.tracks[target].Handle(pair, frameIndex)
	return target, events
}
