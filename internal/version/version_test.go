package version

import (
	"testing"
)

func TestVersion(t *testing.T) {
	if v := Version(); v == "" || v == "unknown" {
		t.Fatalf("Version() = %q, want the embedded version", v)
	}
}
