// internal/config/extras.go
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Extras are passthrough simulator flags. They ride the command line as
// repeatable name=value items and the config file as a mapping. Commands
// are executed as argument vectors, never through a shell, so validation
// here is about catching typos and nonsense early, not escaping.

var extraValueBad = func(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("._,:=+/@%-", r):
		return false
	}
	return true
}

func validFlagName(name string) bool {
	trimmed := strings.TrimLeft(name, "-")
	if trimmed == "" || len(name)-len(trimmed) > 2 {
		return false
	}
	for i, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case (r == '-' || r == '_' || r == '.') && i > 0:
		default:
			return false
		}
	}
	return true
}

// ParseExtras turns repeatable name=value items into a flag map. An item
// without '=' is a boolean flag (empty value).
func ParseExtras(items []string) (map[string]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(items))
	for _, item := range items {
		name, value := item, ""
		if i := strings.IndexByte(item, '='); i >= 0 {
			name, value = item[:i], item[i+1:]
		}
		out[name] = value
	}
	if err := ValidateExtras(out); err != nil {
		return nil, err
	}
	return out, nil
}

// MergeExtras overlays b on a, key by key, without mutating either.
func MergeExtras(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// ValidateExtras rejects flag names and values that could not belong on a
// sane simulator command line.
func ValidateExtras(extras map[string]string) error {
	for name, value := range extras {
		if !validFlagName(name) {
			return fmt.Errorf("invalid passthrough flag name %q", name)
		}
		if i := strings.IndexFunc(value, extraValueBad); i >= 0 {
			return fmt.Errorf("invalid character %q in passthrough value for %s", value[i], name)
		}
	}
	return nil
}

// ExtrasArgs renders the map as argv items in deterministic order: flags
// sorted by name, each followed by its value when non-empty. Names given
// without dashes gain a double-dash prefix.
func ExtrasArgs(extras map[string]string) []string {
	if len(extras) == 0 {
		return nil
	}
	names := make([]string, 0, len(extras))
	for name := range extras {
		names = append(names, name)
	}
	sort.Strings(names)
	var args []string
	for _, name := range names {
		flag := name
		if !strings.HasPrefix(flag, "-") {
			flag = "--" + flag
		}
		args = append(args, flag)
		if v := extras[name]; v != "" {
			args = append(args, v)
		}
	}
	return args
}
