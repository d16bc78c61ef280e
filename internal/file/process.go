// Package file reads and writes the files around the roll processor.
package file

import (
	"fmt"
	"io/fs"

	"github.com/divVerent/midiroll/internal/midifile"
	"github.com/divVerent/midiroll/internal/processor"
)

// Load reads and decodes the input file named by options. A checksum in the
// options must match the decrypted content; an empty one is filled in.
func Load(fsys fs.FS, config *processor.Config, options *processor.Options) (*midifile.Song, error) {
	data, err := ReadInput(fsys, options.InputFile, config.Passphrase)
	if err != nil {
		return nil, err
	}
	sum := Checksum(data)
	if options.InputFileSHA256 != "" && options.InputFileSHA256 != sum {
		return nil, fmt.Errorf("mismatching checksum of %v: got %v, want %v", options.InputFile, sum, options.InputFileSHA256)
	}
	options.InputFileSHA256 = sum
	song, err := midifile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse %v: %w", options.InputFile, err)
	}
	return song, nil
}

// Process loads the input file and makes all rolls.
func Process(fsys fs.FS, config *processor.Config, options *processor.Options) (*midifile.Song, map[string]*processor.Output, error) {
	song, err := Load(fsys, config, options)
	if err != nil {
		return nil, nil, err
	}
	output, err := processor.Process(song, config, options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to process: %w", err)
	}
	return song, output, nil
}
