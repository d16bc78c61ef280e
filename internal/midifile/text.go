package midifile

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText turns a MIDI text meta event into a string. Old files mostly use
// Windows-1252, so anything that is not valid UTF-8 is read as that.
func decodeText(raw string) string {
	if utf8.ValidString(raw) {
		return raw
	}
	s, err := charmap.Windows1252.NewDecoder().String(raw)
	if err != nil {
		return raw
	}
	return s
}
