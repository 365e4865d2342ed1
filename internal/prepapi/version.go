package prepapi

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinServiceVersion is the oldest service release this client speaks to.
const MinServiceVersion = "v1.0.0"

// ErrIncompatible is returned when the service version is outside the
// supported range.
var ErrIncompatible = errors.New("incompatible analysis service")

// CheckVersion verifies that a service version, with or without a leading
// "v", shares MinServiceVersion's major version and is not older.
func CheckVersion(version string) error {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: unparseable version %q", ErrIncompatible, version)
	}
	if semver.Major(v) != semver.Major(MinServiceVersion) {
		return fmt.Errorf("%w: service major version %s, client supports %s",
			ErrIncompatible, semver.Major(v), semver.Major(MinServiceVersion))
	}
	if semver.Compare(v, MinServiceVersion) < 0 {
		return fmt.Errorf("%w: service %s is older than %s", ErrIncompatible, v, MinServiceVersion)
	}
	return nil
}
