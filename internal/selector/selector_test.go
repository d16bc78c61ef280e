package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/divVerent/midiroll/internal/roll"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Selector
		err  string
	}{
		{in: "1,0", want: Selector{Track: 1, Channel: 0}},
		{in: "2,15+12", want: Selector{Track: 2, Channel: 15, Offset: 12}},
		{in: "0,3-24", want: Selector{Track: 0, Channel: 3, Offset: -24}},
		{in: "0,3-128", want: Selector{Track: 0, Channel: 3, Offset: -128}},
		{in: "1", err: "expected a ','"},
		{in: "x,1", err: "bad track number"},
		{in: "-1,1", err: "bad track number"},
		{in: "1,16", err: "bad channel number"},
		{in: "1,+3", err: "bad channel number"},
		{in: "1,2+", err: "bad offset number"},
		{in: "1,2+128", err: "bad offset number"},
		{in: "1,2+1-1", err: "bad offset number"},
	} {
		got, err := Parse(tc.in)
		if tc.err != "" {
			if err == nil || !strings.Contains(err.Error(), tc.err) {
				t.Errorf("Parse(%q) = %v, %v; want error containing %q", tc.in, got, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
		if back, _ := Parse(got.String()); back != got {
			t.Errorf("Parse(%q).String() = %q does not parse back", tc.in, got.String())
		}
	}
}

func TestParseArgs(t *testing.T) {
	selectors, divisor, err := ParseArgs([]string{"1,0", "/2.5", "2,1-12"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, divisor)
	assert.Equal(t, []Selector{{Track: 1}, {Track: 2, Channel: 1, Offset: -12}}, selectors)

	_, divisor, err = ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, divisor)

	_, _, err = ParseArgs([]string{"/0"})
	assert.Error(t, err)
	_, _, err = ParseArgs([]string{"/abc"})
	assert.Error(t, err)
}

func TestSelectorYAML(t *testing.T) {
	var doc struct {
		Selectors []Selector `yaml:"selectors"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("selectors: [\"1,0\", \"2,3+7\"]\n"), &doc))
	assert.Equal(t, []Selector{{Track: 1}, {Track: 2, Channel: 3, Offset: 7}}, doc.Selectors)
	assert.Error(t, yaml.Unmarshal([]byte("selectors: [\"1\"]\n"), &doc))
}

func TestSetFilter(t *testing.T) {
	s := NewSet([]Selector{{Track: 1, Channel: 0, Offset: 12}, {Track: 1, Channel: 0, Offset: -12}, {Track: 2, Channel: 9}})
	for _, tc := range []struct {
		ev     roll.NoteEvent
		offset int
		ok     bool
	}{
		{roll.NoteEvent{Track: 1, Channel: 0, Action: roll.Press}, 12, true},
		{roll.NoteEvent{Track: 1, Channel: 0, Action: roll.Release}, 12, true},
		{roll.NoteEvent{Track: 2, Channel: 9, Action: roll.Press}, 0, true},
		{roll.NoteEvent{Track: 2, Channel: 8, Action: roll.Press}, 0, false},
		{roll.NoteEvent{Track: 3, Channel: 0, Action: roll.Press}, 0, false},
	} {
		offset, ok := s.Filter(tc.ev)
		if offset != tc.offset || ok != tc.ok {
			t.Errorf("Filter(%v) = %d, %v; want %d, %v", tc.ev, offset, ok, tc.offset, tc.ok)
		}
	}
	assert.Equal(t, []string{
		"track 1, channel 0: 1",
		"track 2, channel 8: 1",
		"track 2, channel 9: 1",
		"track 3, channel 0: 1",
	}, s.Stats.Lines())
}

func TestEmptySetTakesEverything(t *testing.T) {
	s := NewSet(nil)
	offset, ok := s.Filter(roll.NoteEvent{Track: 5, Channel: 3, Action: roll.Release})
	assert.True(t, ok)
	assert.Zero(t, offset)
	assert.Empty(t, s.Stats)
}
