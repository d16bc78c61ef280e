package version

import (
	"bytes"
	_ "embed"
)

//go:embed version.txt
var versionBytes []byte

// Version returns the version of this code.
func Version() string {
	v := string(bytes.TrimSpace(versionBytes))
	if v == "" {
		return "unknown"
	}
	return v
}
