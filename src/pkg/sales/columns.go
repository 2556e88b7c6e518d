package sales

import (
	"fmt"
	"strings"
)

// ColumnRule renames any header containing Substring to Canonical.
type ColumnRule struct {
	Substring string
	Canonical string
}

// ColumnRules is an ordered rule list; the first matching rule wins.
type ColumnRules []ColumnRule

// Canonical returns the canonical name for header, if any rule matches it.
func (rules ColumnRules) Canonical(header string) (canonical string, matched bool) {
	for _, rule := range rules {
		if rule.Substring == "" {
			continue
		}
		if strings.Contains(header, rule.Substring) {
			return rule.Canonical, true
		}
	}
	return "", false
}

// SubstringsFor lists the substrings that map to canonical.
func (rules ColumnRules) SubstringsFor(canonical string) []string {
	substrings := make([]string, 0)
	for _, rule := range rules {
		if rule.Canonical == canonical && rule.Substring != "" {
			substrings = append(substrings, rule.Substring)
		}
	}
	return substrings
}

/*
RenameHeaders trims every header and renames it through the rules.

A canonical name is given to the first header that earns it. Every other
header keeps its trimmed name unless that name is already in use, by a
canonical name or by an earlier header; then it gets a " (2)", " (3)", ...
suffix. Two columns never share a name.
*/
func (rules ColumnRules) RenameHeaders(headers []string) []string {
	renamed := make([]string, len(headers))
	assigned := make([]bool, len(headers))
	taken := make(map[string]bool)

	for index, header := range headers {
		trimmed := strings.TrimSpace(header)
		renamed[index] = trimmed

		canonical, matched := rules.Canonical(trimmed)
		if !matched || taken[canonical] {
			continue
		}
		renamed[index] = canonical
		assigned[index] = true
		taken[canonical] = true
	}

	for index, name := range renamed {
		if assigned[index] {
			continue
		}
		unique := name
		for suffix := 2; taken[unique]; suffix++ {
			unique = fmt.Sprintf("%s (%d)", name, suffix)
		}
		renamed[index] = unique
		taken[unique] = true
	}

	return renamed
}
