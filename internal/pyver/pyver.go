// Package pyver gates version-dependent grammar features on the target
// language version.
package pyver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Feature is a grammar construct that appeared in a specific language
// version.
type Feature int

const (
	// FeatureWalrus is the ":=" assignment expression.
	FeatureWalrus Feature = iota
	// FeaturePosOnlyParams is the "/" marker in parameter lists.
	FeaturePosOnlyParams
	// FeatureMatch is the match statement and its soft keywords.
	FeatureMatch
	// FeatureParenContextManagers is parenthesized with-item lists.
	FeatureParenContextManagers
	// FeatureExceptStar is the "except*" exception group handler.
	FeatureExceptStar
	// FeatureTypeAlias is the "type X = ..." alias statement.
	FeatureTypeAlias
)

func (f Feature) String() string {
	switch f {
	case FeatureWalrus:
		return "assignment expression (':=')"
	case FeaturePosOnlyParams:
		return "positional-only parameter marker ('/')"
	case FeatureMatch:
		return "match statement"
	case FeatureParenContextManagers:
		return "parenthesized context managers"
	case FeatureExceptStar:
		return "except* handler"
	case FeatureTypeAlias:
		return "type alias statement"
	default:
		return fmt.Sprintf("feature(%d)", int(f))
	}
}

var featureMin = map[Feature]*semver.Version{
	FeatureWalrus:               semver.MustParse("3.8.0"),
	FeaturePosOnlyParams:        semver.MustParse("3.8.0"),
	FeatureMatch:                semver.MustParse("3.10.0"),
	FeatureParenContextManagers: semver.MustParse("3.10.0"),
	FeatureExceptStar:           semver.MustParse("3.11.0"),
	FeatureTypeAlias:            semver.MustParse("3.12.0"),
}

var latest = semver.MustParse("3.12.0")

// Latest returns the newest language version the parser understands.
func Latest() *semver.Version {
	return latest
}

// MinVersion returns the first version that includes the feature.
func MinVersion(f Feature) *semver.Version {
	return featureMin[f]
}

// Supports reports whether a target version includes the feature.
func Supports(v *semver.Version, f Feature) bool {
	min, ok := featureMin[f]
	if !ok {
		return false
	}
	return !v.LessThan(min)
}

// ParseVersion parses a version string such as "3.10" or "3.11.2".
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid language version %q: %w", s, err)
	}
	return v, nil
}
