package roll

import (
	"errors"
	"testing"
)

func TestResolvePitchBoundaries(t *testing.T) {
	for _, tc := range []struct {
		pitch  uint8
		offset int
		want   Pitch
		ok     bool
	}{
		{uint8(LowestPitch), 0, LowestPitch, true},
		{uint8(LowestPitch) - 1, 0, 0, false},
		{uint8(HighestPitch), 0, HighestPitch, true},
		{uint8(HighestPitch) + 1, 0, 0, false},
		{uint8(LowestPitch) - 1, 1, LowestPitch, true},
		{uint8(HighestPitch) + 12, -12, HighestPitch, true},
		{60, 12, 72, true},
		{60, -12, 48, true},
		{0, -128, 0, false},
		{127, 127, 0, false},
		{255, 0, 0, false},
	} {
		ev := NoteEvent{Time: 7, Track: 2, Channel: 3, Pitch: tc.pitch, Action: Press}
		got, err := ResolvePitch(ev, tc.offset)
		if tc.ok {
			if err != nil {
				t.Errorf("ResolvePitch(%d, %d): unexpected error %v", tc.pitch, tc.offset, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ResolvePitch(%d, %d) = %v, want %v", tc.pitch, tc.offset, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ResolvePitch(%d, %d) = %v, %v; want ErrOutOfRange", tc.pitch, tc.offset, got, err)
			continue
		}
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("ResolvePitch(%d, %d): error %T is not a *RangeError", tc.pitch, tc.offset, err)
		}
		if rangeErr.Event != ev || rangeErr.Offset != tc.offset {
			t.Errorf("RangeError context = %+v, want event %+v offset %d", rangeErr, ev, tc.offset)
		}
	}
}

func TestHoles(t *testing.T) {
	if NumPitches != 80 {
		t.Fatalf("NumPitches = %d, want 80", NumPitches)
	}
	seen := map[int]bool{}
	for p := 0; p < 128; p++ {
		hole, ok := Pitch(p).Hole()
		if ok != Pitch(p).Playable() {
			t.Fatalf("Pitch(%d).Hole() ok = %v, Playable() = %v", p, ok, Pitch(p).Playable())
		}
		if !ok {
			continue
		}
		if hole < FirstNoteHole || hole > LastNoteHole {
			t.Errorf("Pitch(%d).Hole() = %d, outside note holes", p, hole)
		}
		if seen[hole] {
			t.Errorf("hole %d used twice", hole)
		}
		seen[hole] = true
	}
	if len(seen) != NumPitches {
		t.Errorf("got %d note holes, want %d", len(seen), NumPitches)
	}
	for _, h := range []int{HoleSustain, HoleSoft, NumHoles - 1} {
		if seen[h] {
			t.Errorf("reserved hole %d used by a note", h)
		}
	}
}

func TestPitchString(t *testing.T) {
	for p, want := range map[Pitch]string{60: "C4", 21: "A0", 69: "A4", 61: "C#4", 0: "C-1"} {
		if got := p.String(); got != want {
			t.Errorf("Pitch(%d).String() = %q, want %q", p, got, want)
		}
	}
}
