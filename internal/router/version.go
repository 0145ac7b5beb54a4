package router

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ErrInvalidVersion is returned by ParseVersion for tokens that are not
// version segments at all.
var ErrInvalidVersion = errors.New("invalid API version token")

// Version is a major.minor API version.
type Version struct {
	Major int
	Minor int
}

// Known API versions.
var (
	V1 = Version{Major: 1}
	V2 = Version{Major: 2}
)

// String renders the version as "1.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Segments lists the URL tokens that select v, e.g. "v1" and "v1.0".
func (v Version) Segments() []string {
	if v.Minor == 0 {
		return []string{fmt.Sprintf("v%d", v.Major), "v" + v.String()}
	}
	return []string{"v" + v.String()}
}

// ParseVersion accepts exactly the tokens Segments produces, case-insensitively:
// "v1", "V2", "v1.0". Bare numbers, patch levels and pre-releases are rejected.
func ParseVersion(token string) (Version, error) {
	lower := strings.ToLower(token)
	if !strings.HasPrefix(lower, "v") {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, token)
	}

	parsed, err := goversion.NewVersion(lower)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, token, err)
	}
	if parsed.Prerelease() != "" || parsed.Metadata() != "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, token)
	}

	segments := parsed.Segments()
	v := Version{Major: segments[0], Minor: segments[1]}
	if !slices.Contains(v.Segments(), lower) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, token)
	}
	return v, nil
}
