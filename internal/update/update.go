package update

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Version is the running build's version.
const Version = "0.3.0"

// latestKnown stands in for a release feed until one exists.
// TODO: fetch the latest release tag from the distribution endpoint.
const latestKnown = "0.3.0"

// Check reports whether latest is a newer version than current. A "v"
// prefix on either side is tolerated.
func Check(current, latest string) (bool, error) {
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		return false, fmt.Errorf("invalid current version %q: %w", current, err)
	}
	lat, err := semver.ParseTolerant(latest)
	if err != nil {
		return false, fmt.Errorf("invalid latest version %q: %w", latest, err)
	}
	return lat.GT(cur), nil
}

// CheckSelf compares the running build against the latest known release.
func CheckSelf() (bool, error) {
	return Check(Version, latestKnown)
}
