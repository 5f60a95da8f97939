package proxy

import (
	"strings"

	"github.com/pkg/errors"
)

// segment is one element of a compiled pattern. A variable segment matches
// any single path segment and binds its name; a literal matches only itself.
type segment struct {
	literal  string
	name     string
	variable bool
}

// Pattern is a compiled route pattern. Patterns are built once during route
// registration and never modified afterwards, so they may be read
// concurrently.
type Pattern struct {
	segments []segment
}

// CompilePattern compiles a route pattern such as "/users/{user_id}" into its
// matchable form. Segments wrapped in braces become variables; everything
// else is matched verbatim. Leading, trailing and repeated slashes are
// normalized away, so "" and "/" both compile to the root pattern.
func CompilePattern(raw string) (*Pattern, error) {
	parts := splitPath(raw)

	segments := make([]segment, 0, len(parts))
	seen := map[string]bool{}

	for _, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]

			if name == "" {
				return nil, errors.Errorf("invalid pattern '%s': empty variable name", raw)
			}

			if strings.ContainsAny(name, "{}") {
				return nil, errors.Errorf("invalid pattern '%s': unmatched brace in segment '%s'", raw, part)
			}

			if seen[name] {
				return nil, errors.Errorf("invalid pattern '%s': duplicate variable '%s'", raw, name)
			}

			seen[name] = true
			segments = append(segments, segment{name: name, variable: true})
			continue
		}

		if strings.ContainsAny(part, "{}") {
			return nil, errors.Errorf("invalid pattern '%s': unmatched brace in segment '%s'", raw, part)
		}

		segments = append(segments, segment{literal: part})
	}

	return &Pattern{segments: segments}, nil
}

// splitPath splits a path or pattern into its non-empty segments.
func splitPath(path string) []string {
	var parts []string

	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

// Match reports whether path matches the pattern. Paths are split the same
// way patterns are, so a pattern with N segments only ever matches paths with
// exactly N segments. On a match the returned map binds each variable name to
// the literal text observed at its position, untouched by any decoding or
// coercion.
func (pattern *Pattern) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)

	if len(parts) != len(pattern.segments) {
		return nil, false
	}

	params := map[string]string{}

	for i, seg := range pattern.segments {
		if seg.variable {
			params[seg.name] = parts[i]
			continue
		}

		if seg.literal != parts[i] {
			return nil, false
		}
	}

	return params, true
}

// Equivalent reports whether two patterns match exactly the same set of
// paths: same segment count, literals equal position by position, variables
// in the same positions. Variable names are ignored.
func (pattern *Pattern) Equivalent(other *Pattern) bool {
	if len(pattern.segments) != len(other.segments) {
		return false
	}

	for i, seg := range pattern.segments {
		o := other.segments[i]

		if seg.variable != o.variable {
			return false
		}

		if !seg.variable && seg.literal != o.literal {
			return false
		}
	}

	return true
}

// String returns the normalized form of the pattern.
func (pattern *Pattern) String() string {
	if len(pattern.segments) == 0 {
		return "/"
	}

	var b strings.Builder

	for _, seg := range pattern.segments {
		b.WriteByte('/')

		if seg.variable {
			b.WriteByte('{')
			b.WriteString(seg.name)
			b.WriteByte('}')
		} else {
			b.WriteString(seg.literal)
		}
	}

	return b.String()
}
