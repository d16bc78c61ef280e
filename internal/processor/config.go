package processor

import (
	"github.com/divVerent/midiroll/internal/render"
	"github.com/divVerent/midiroll/internal/selector"
)

// Config holds settings shared by all songs.
type Config struct {
	// FudgeDivisor sets the re-press tolerance to 1/FudgeDivisor of a beat.
	FudgeDivisor int `yaml:"fudge_divisor,omitempty"`

	// Velocity of the notes in the output MIDI files.
	Velocity uint8 `yaml:"velocity,omitempty"`

	// Tempo in bpm for input files that do not set one.
	Tempo float64 `yaml:"tempo,omitempty"`

	// Image is the roll image layout.
	Image render.Layout `yaml:"image,omitempty"`

	// Passphrase decrypts .age input files.
	Passphrase string `yaml:"passphrase,omitempty"`
}

// RollOptions describe one output roll.
type RollOptions struct {
	// Selectors pick the tracks and channels to put on the roll. Empty means all.
	Selectors []selector.Selector `yaml:"selectors,omitempty"`

	// TimeDivisor shortens the roll image by this factor.
	TimeDivisor float64 `yaml:"time_divisor,omitempty"`

	// FudgeDivisor overrides Config.FudgeDivisor.
	FudgeDivisor int `yaml:"fudge_divisor,omitempty"`
}

// Options describe how to turn one input file into rolls.
type Options struct {
	InputFile       string `yaml:"input_file"`
	InputFileSHA256 string `yaml:"input_file_sha256,omitempty"`

	// Defaults for all rolls.
	RollOptions `yaml:",inline"`

	// Rolls by name. When empty, a single roll named DefaultRoll is made
	// from the defaults.
	Rolls map[string]RollOptions `yaml:"rolls,omitempty"`
}

// DefaultRoll names the roll made when Options.Rolls is empty.
const DefaultRoll = "roll"

const (
	defaultFudgeDivisor = 3
	defaultTempo        = 120
)

// RollsToMake returns the fully merged options of every roll to make.
func (o *Options) RollsToMake() map[string]RollOptions {
	if len(o.Rolls) == 0 {
		return map[string]RollOptions{DefaultRoll: o.RollOptions}
	}
	rolls := make(map[string]RollOptions, len(o.Rolls))
	for name, r := range o.Rolls {
		rolls[name] = Merge(o.RollOptions, r)
	}
	return rolls
}
