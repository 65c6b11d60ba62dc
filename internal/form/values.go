package form

import (
	"net/url"
	"strings"
)

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// present returns nil when key was not submitted.
func present(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	s := text(values, key)
	return &s
}

func checked(values url.Values, key string) bool {
	_, ok := values[key]
	return ok
}

// list returns every non-blank value of key, never nil.
func list(values url.Values, key string) []string {
	out := []string{}
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
