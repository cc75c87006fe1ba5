// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oasdocs/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// names lists the option names in the same order as sources, for the error
// message. The returned error is an *oaserrors.ConfigError for Option "source"
// whose Value is the number of sources that were set.
func ValidateSingleInputSource(names []string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{
			Option:  "source",
			Message: "must specify an input source (use " + joinOr(names) + ")",
		}
	case sourceCount > 1:
		return &oaserrors.ConfigError{
			Option:  "source",
			Value:   sourceCount,
			Message: "must specify exactly one input source",
		}
	}
	return nil
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return "an input option"
	case 1:
		return names[0]
	}
	out := ""
	for i, n := range names {
		switch {
		case i == 0:
		case i == len(names)-1:
			out += ", or "
		default:
			out += ", "
		}
		out += n
	}
	return out
}
