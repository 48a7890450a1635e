package template

import "strings"

// sectionDashRun is the run of dashes that qualifies a ## line as the
// section marker separating explanatory comments from override entries.
const sectionDashRun = "----"

// ParseOverrides extracts key=value overrides from template text.
//
// When a section marker is present (a ## comment containing a run of four or
// more dashes), only lines after the first marker are considered; otherwise
// the whole text is eligible. ## lines are comments and never data. Lines
// commented out with a single # are uncommented and treated as live entries.
// Anything that does not reduce to key=value is skipped; parsing never fails.
func ParseOverrides(text string) *OverrideMap {
	overrides := NewOverrideMap()

	lines := strings.Split(text, "\n")
	start := 0
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "##") && strings.Contains(stripped, sectionDashRun) {
			start = i + 1
			break
		}
	}

	for _, line := range lines[start:] {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "##") {
			continue
		}
		if strings.HasPrefix(stripped, "#") {
			stripped = strings.TrimSpace(strings.TrimLeft(stripped, "#"))
		}
		if stripped == "" || strings.HasPrefix(stripped, "#") || !strings.Contains(stripped, "=") {
			continue
		}
		key, value, _ := strings.Cut(stripped, "=")
		overrides.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return overrides
}
