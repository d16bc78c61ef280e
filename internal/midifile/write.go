package midifile

import (
	"cmp"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/divVerent/midiroll/internal/roll"
)

// DefaultVelocity is arbitrary but sounds good.
const DefaultVelocity = 90

type timedMessage struct {
	time int64
	msg  smf.Message
}

// Write renders intervals as a two track SMF: a tempo track and one note
// track on channel 0. Zero length intervals cannot be expressed and are left out.
func Write(intervals []roll.Interval, timeBase uint16, bpm float64, velocity uint8) *smf.SMF {
	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)

	var msgs []timedMessage
	for _, iv := range intervals {
		if iv.Duration <= 0 {
			continue
		}
		msgs = append(msgs,
			timedMessage{iv.Start, smf.Message(midi.NoteOn(0, uint8(iv.Pitch), velocity))},
			timedMessage{iv.End(), smf.Message(midi.NoteOff(0, uint8(iv.Pitch)))})
	}
	slices.SortStableFunc(msgs, func(a, b timedMessage) int {
		return cmp.Compare(a.time, b.time)
	})

	notes := smf.Track{
		{Delta: 0, Message: smf.Message(midi.ControlChange(0, 0, 0))},
		{Delta: 0, Message: smf.Message(midi.ProgramChange(0, 1))},
	}
	var last int64
	for _, m := range msgs {
		notes = append(notes, smf.Event{
			Delta:   uint32(m.time - last),
			Message: m.msg,
		})
		last = m.time
	}
	sortNoteOffFirst(notes)
	notes.Close(0)

	mid := smf.NewSMF1()
	mid.TimeFormat = smf.MetricTicks(timeBase)
	mid.Add(tempo)
	mid.Add(notes)
	return mid
}
