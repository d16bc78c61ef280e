package roll

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// eventsFromOps turns generated numbers into a time-ordered feed on two
// pitches from two tracks.
func eventsFromOps(ops []int) []NoteEvent {
	var events []NoteEvent
	var time int64
	for _, op := range ops {
		time += int64(op % 7)
		ev := NoteEvent{
			Time:  time,
			Track: (op / 4) % 2,
			Pitch: 60 + uint8((op/2)%2),
		}
		if op%2 == 0 {
			ev.Action = Press
		} else {
			ev.Action = Release
		}
		events = append(events, ev)
	}
	return events
}

type tally struct {
	presses, releases, intervals, orphans, rePresses int
}

func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	opsGen := gen.SliceOf(gen.IntRange(0, 63))

	properties.Property("every interval starts at a press and has nonnegative duration", prop.ForAll(
		func(ops []int) bool {
			events := eventsFromOps(ops)
			pressTimes := map[Pitch]map[int64]bool{}
			for _, ev := range events {
				if ev.Action != Press {
					continue
				}
				if pressTimes[Pitch(ev.Pitch)] == nil {
					pressTimes[Pitch(ev.Pitch)] = map[int64]bool{}
				}
				pressTimes[Pitch(ev.Pitch)][ev.Time] = true
			}
			intervals := Resolve(events, Options{FudgeTicks: 3, Report: func(Diagnostic) {}})
			for i, iv := range intervals {
				if iv.Duration < 0 || !pressTimes[iv.Pitch][iv.Start] {
					return false
				}
				if i > 0 && intervals[i-1].Start > iv.Start {
					return false
				}
			}
			return true
		},
		opsGen,
	))

	properties.Property("every press and release is accounted for", prop.ForAll(
		func(ops []int, fudge int64) bool {
			events := eventsFromOps(ops)
			tallies := map[Pitch]*tally{60: {}, 61: {}}
			for _, ev := range events {
				if ev.Action == Press {
					tallies[Pitch(ev.Pitch)].presses++
				} else {
					tallies[Pitch(ev.Pitch)].releases++
				}
			}
			r := NewResolver(Options{
				FudgeTicks: fudge,
				Report: func(d Diagnostic) {
					switch d.Kind {
					case OrphanRelease:
						tallies[d.Pitch].orphans++
					case AnomalousRePress:
						tallies[d.Pitch].rePresses++
					}
				},
			})
			for _, ev := range events {
				r.Handle(ev)
			}
			open := r.Open()
			for _, iv := range r.Finish() {
				tallies[iv.Pitch].intervals++
			}
			for p, c := range tallies {
				stillOpen := 0
				if _, ok := open[p]; ok {
					stillOpen = 1
				}
				extraPresses := c.presses - c.intervals - stillOpen
				absorbed := c.releases - c.intervals - c.orphans
				if extraPresses < 0 || absorbed < 0 || absorbed > extraPresses {
					return false
				}
				if c.rePresses > extraPresses {
					return false
				}
				if fudge < 0 && c.rePresses != extraPresses {
					return false
				}
			}
			return true
		},
		opsGen,
		gen.Int64Range(-1, 10),
	))

	properties.Property("tolerance never changes the intervals", prop.ForAll(
		func(ops []int) bool {
			events := eventsFromOps(ops)
			quiet := func(Diagnostic) {}
			strict := Resolve(events, Options{FudgeTicks: -1, Report: quiet})
			lax := Resolve(events, Options{FudgeTicks: 1 << 40, Report: quiet})
			if len(strict) != len(lax) {
				return false
			}
			for i := range strict {
				if strict[i] != lax[i] {
					return false
				}
			}
			return true
		},
		opsGen,
	))

	properties.TestingRun(t)
}
