package storagequota

import "strings"

// DefaultFileCapMB applies to plan codes missing from the cap table.
const DefaultFileCapMB = 2

var builtinFileCaps = map[string]int{
	"a":     2,
	"basic": 2,
	"b":     5,
	"mid":   5,
	"c":     10,
	"full":  10,
}

// FileCapTable maps plan codes to the largest single file, in MB, a tenant on that plan may upload.
// Codes are compared case-insensitively.
type FileCapTable struct {
	caps map[string]int
}

// NewFileCapTable merges overrides on top of the built-in table. Non-positive overrides are ignored.
func NewFileCapTable(overrides map[string]int) *FileCapTable {
	caps := make(map[string]int, len(builtinFileCaps)+len(overrides))
	for code, mb := range builtinFileCaps {
		caps[code] = mb
	}
	for code, mb := range overrides {
		if mb <= 0 {
			continue
		}
		caps[normalizeCode(code)] = mb
	}
	return &FileCapTable{caps: caps}
}

func (t *FileCapTable) CapFor(planCode string) int {
	if mb, ok := t.caps[normalizeCode(planCode)]; ok {
		return mb
	}
	return DefaultFileCapMB
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
