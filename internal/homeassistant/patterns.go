package homeassistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher selects entity ids by configured patterns. A plain pattern matches
// as a case-insensitive substring; a pattern containing '*' is a wildcard
// anchored at the start of the id.
type Matcher struct {
	substrings []string
	wildcards  []*regexp.Regexp
}

// NewMatcher compiles patterns. Empty patterns are ignored.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.Contains(p, "*") {
			m.substrings = append(m.substrings, p)
			continue
		}

		parts := strings.Split(p, "*")
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}
		re, err := regexp.Compile("^" + strings.Join(parts, ".*"))
		if err != nil {
			return nil, fmt.Errorf("invalid entity pattern %q: %w", p, err)
		}
		m.wildcards = append(m.wildcards, re)
	}
	return m, nil
}

// Match reports whether entityID matches any pattern.
func (m *Matcher) Match(entityID string) bool {
	id := strings.ToLower(entityID)
	for _, s := range m.substrings {
		if strings.Contains(id, s) {
			return true
		}
	}
	for _, re := range m.wildcards {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

// Empty reports whether no usable pattern was configured.
func (m *Matcher) Empty() bool {
	return len(m.substrings) == 0 && len(m.wildcards) == 0
}
