package midifile

import (
	"fmt"
	"math"
)

// TimeSig is a time signature change.
type TimeSig struct {
	Tick  int64
	Num   int
	Denom int
}

// Pos is a musical position, printed as bar:beat. Bar and beat count from 1; Beat has a fractional part.
type Pos struct {
	Bar  int
	Beat float64
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%g", p.Bar, math.Round(p.Beat*100)/100)
}

// addTimeSig records a time signature. A later one at the same tick replaces the earlier.
func (s *Song) addTimeSig(sig TimeSig) {
	if n := len(s.TimeSigs); n > 0 && s.TimeSigs[n-1].Tick == sig.Tick {
		s.TimeSigs[n-1] = sig
		return
	}
	s.TimeSigs = append(s.TimeSigs, sig)
}

// Position converts a tick into bar and beat. The song is in 4/4 until the
// first time signature. A time signature change in the middle of a bar cuts
// that bar short.
func (s *Song) Position(tick int64) Pos {
	sigs := s.TimeSigs
	if len(sigs) == 0 || sigs[0].Tick > 0 {
		sigs = append([]TimeSig{{Tick: 0, Num: 4, Denom: 4}}, sigs...)
	}
	bar := 0
	for i, sig := range sigs {
		beatLen := float64(s.TimeBase) * 4 / float64(sig.Denom)
		barLen := beatLen * float64(sig.Num)
		if barLen <= 0 {
			continue
		}
		if i+1 < len(sigs) && tick >= sigs[i+1].Tick {
			bar += int(math.Ceil(float64(sigs[i+1].Tick-sig.Tick) / barLen))
			continue
		}
		into := float64(tick - sig.Tick)
		bars := math.Floor(into / barLen)
		return Pos{
			Bar:  bar + int(bars) + 1,
			Beat: (into-bars*barLen)/beatLen + 1,
		}
	}
	return Pos{Bar: 1, Beat: 1}
}
