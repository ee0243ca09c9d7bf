package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

// placeholder matches ${NAME} and ${NAME:default}.
var placeholder = regexp.MustCompile(`\$\{([A-Za-z0-9_.\-]+)(:([^}]*))?\}`)

// expandPlaceholders substitutes ${NAME:default} references in property
// values, the way application.yml files commonly point at the environment.
// NAME is looked up as given and then as an upper-case env var with dots
// and dashes replaced by underscores.
func expandPlaceholders(value string, lookup func(string) (string, bool)) (string, error) {
	var missing []string

	expanded := placeholder.ReplaceAllStringFunc(value, func(ref string) string {
		m := placeholder.FindStringSubmatch(ref)
		name, hasDefault, def := m[1], m[2] != "", m[3]

		if v, ok := lookupProperty(name, lookup); ok {
			return v
		}
		if hasDefault {
			return def
		}
		missing = append(missing, name)
		return ref
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(missing, ", "))
	}
	return expanded, nil
}

func lookupProperty(name string, lookup func(string) (string, bool)) (string, bool) {
	if v, ok := lookup(name); ok {
		return v, true
	}
	envName := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(name))
	if envName == name {
		return "", false
	}
	return lookup(envName)
}
