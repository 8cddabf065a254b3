package savefile

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentFormatVersion is written into every new save file.
const CurrentFormatVersion = "1.2.0"

// supportedFormats is the range of format versions this build can read.
const supportedFormats = "^1.0.0"

// ErrIncompatibleVersion is returned for save files outside supportedFormats.
var ErrIncompatibleVersion = errors.New("incompatible save file format")

var supported = mustConstraint(supportedFormats)

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(fmt.Sprintf("savefile: bad constraint %q: %v", raw, err))
	}
	return c
}

// CheckVersion reports whether raw names a readable format version.
func CheckVersion(raw string) error {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("format version %q: %w", raw, err)
	}
	if !supported.Check(v) {
		return fmt.Errorf("format version %s, want %s: %w", v, supportedFormats, ErrIncompatibleVersion)
	}
	return nil
}
