package catalog

import "strings"

// WildcardSuffix marks a feature path as a prefix match.
const WildcardSuffix = "*"

type PatternKind int

const (
	PatternExact PatternKind = iota
	PatternPrefix
)

func (k PatternKind) String() string {
	if k == PatternPrefix {
		return "prefix"
	}
	return "exact"
}

// FeaturePattern is a parsed feature path. "/api/suppliers*" is Prefix("/api/suppliers"),
// anything without the trailing marker is Exact.
type FeaturePattern struct {
	kind PatternKind
	path string
}

func Exact(path string) FeaturePattern {
	return FeaturePattern{kind: PatternExact, path: path}
}

func Prefix(path string) FeaturePattern {
	return FeaturePattern{kind: PatternPrefix, path: path}
}

// ParseFeaturePattern parses a stored feature path. Only a single trailing wildcard is allowed.
func ParseFeaturePattern(raw string) (FeaturePattern, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FeaturePattern{}, ErrPatternInvalid(raw, "path is required")
	}
	if !strings.HasPrefix(raw, "/") {
		return FeaturePattern{}, ErrPatternInvalid(raw, "path must start with /")
	}

	path, isPrefix := strings.CutSuffix(raw, WildcardSuffix)
	if strings.Contains(path, WildcardSuffix) {
		return FeaturePattern{}, ErrPatternInvalid(raw, "wildcard is only allowed at the end")
	}

	if isPrefix {
		return Prefix(path), nil
	}
	return Exact(path), nil
}

// MustParseFeaturePattern is ParseFeaturePattern for literals known to be valid.
func MustParseFeaturePattern(raw string) FeaturePattern {
	p, err := ParseFeaturePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p FeaturePattern) Kind() PatternKind { return p.kind }
func (p FeaturePattern) Path() string      { return p.path }

// Matches reports whether requestPath falls under the pattern.
func (p FeaturePattern) Matches(requestPath string) bool {
	if p.kind == PatternPrefix {
		return strings.HasPrefix(requestPath, p.path)
	}
	return requestPath == p.path
}

// String renders the pattern in its stored form.
func (p FeaturePattern) String() string {
	if p.kind == PatternPrefix {
		return p.path + WildcardSuffix
	}
	return p.path
}
