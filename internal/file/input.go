package file

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"filippo.io/age"
)

// ErrNoPassphrase is returned for encrypted input without a passphrase.
var ErrNoPassphrase = errors.New("input is encrypted but no passphrase was given")

// ReadInput reads an input MIDI file. Files ending in .age are decrypted
// with the passphrase.
func ReadInput(fsys fs.FS, name, passphrase string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", name, err)
	}
	if !strings.HasSuffix(name, ".age") {
		return data, nil
	}
	if passphrase == "" {
		return nil, fmt.Errorf("could not decrypt %v: %w", name, ErrNoPassphrase)
	}
	id, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("could not build scrypt identity: %w", err)
	}
	r, err := age.Decrypt(bytes.NewReader(data), id)
	if err != nil {
		return nil, fmt.Errorf("could not start decrypting %v: %w", name, err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not finish decrypting %v: %w", name, err)
	}
	return plain, nil
}

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
