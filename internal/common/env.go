//nolint:revive // common is an appropriate name for shared utilities package
package common

import (
	"os"
	"strings"
)

// truthyValues are the accepted spellings for an enabled boolean
// environment variable, compared case-insensitively.
var truthyValues = []string{"true", "1", "yes", "on"}

// EnvBool reports whether the environment variable name is set to a truthy
// value ("true", "1", "yes" or "on", case-insensitive). Unset variables and
// any other value report false.
func EnvBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	for _, t := range truthyValues {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}
