package midifile

import (
	"testing"
)

func TestPosition(t *testing.T) {
	song := &Song{TimeBase: 100}
	song.addTimeSig(TimeSig{Tick: 0, Num: 2, Denom: 4})
	song.addTimeSig(TimeSig{Tick: 0, Num: 4, Denom: 4})
	// Three bars of 4/4, then 6/8 starting in the middle of bar 4.
	song.addTimeSig(TimeSig{Tick: 1400, Num: 6, Denom: 8})

	if len(song.TimeSigs) != 2 {
		t.Fatalf("got %d time signatures, want 2: %v", len(song.TimeSigs), song.TimeSigs)
	}
	for _, tc := range []struct {
		tick int64
		want string
	}{
		{0, "1:1"},
		{50, "1:1.5"},
		{100, "1:2"},
		{400, "2:1"},
		{1399, "4:2.99"},
		{1400, "5:1"},
		{1450, "5:2"},
		{1700, "6:1"},
	} {
		if got := song.Position(tc.tick).String(); got != tc.want {
			t.Errorf("Position(%d) = %v, want %v", tc.tick, got, tc.want)
		}
	}
}

func TestPositionDefaultsTo44(t *testing.T) {
	song := &Song{TimeBase: 10}
	if got := song.Position(45).String(); got != "2:1.5" {
		t.Errorf("Position(45) = %v, want 2:1.5", got)
	}
	song.addTimeSig(TimeSig{Tick: 80, Num: 3, Denom: 4})
	if got := song.Position(95).String(); got != "3:2.5" {
		t.Errorf("Position(95) = %v, want 3:2.5", got)
	}
	if got := song.Position(110).String(); got != "4:1" {
		t.Errorf("Position(110) = %v, want 4:1", got)
	}
}
