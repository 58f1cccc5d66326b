// Package prefix finds the shortest prefix that tells a change id apart
// from the others in a set, the way jj highlights ids in its own output.
package prefix

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MinPrefixLen is the shortest prefix ever highlighted.
const MinPrefixLen = 1

// ComputeUniquePrefixes returns the unique prefix length of every id. Once
// sorted, an id shares its longest common prefix with one of its neighbours,
// so only adjacent ids are compared.
func ComputeUniquePrefixes(ids []string) map[string]int {
	sorted := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)

	result := make(map[string]int, len(sorted))
	for i, id := range sorted {
		n := MinPrefixLen
		if i > 0 {
			n = max(n, commonPrefixLen(id, sorted[i-1])+1)
		}
		if i+1 < len(sorted) {
			n = max(n, commonPrefixLen(id, sorted[i+1])+1)
		}
		result[id] = min(n, len(id))
	}
	return result
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// FormatWithPrefix renders the first prefixLen bytes of id in prefixStyle and
// the rest in restStyle.
func FormatWithPrefix(id string, prefixLen int, prefixStyle, restStyle lipgloss.Style) string {
	if id == "" {
		return ""
	}
	prefixLen = max(prefixLen, MinPrefixLen)
	if prefixLen >= len(id) {
		return prefixStyle.Render(id)
	}
	return prefixStyle.Render(id[:prefixLen]) + restStyle.Render(id[prefixLen:])
}

// IDSet holds the unique prefix lengths of a set of ids.
type IDSet struct {
	prefixes map[string]int
}

func NewIDSet(ids []string) *IDSet {
	return &IDSet{prefixes: ComputeUniquePrefixes(ids)}
}

// PrefixLen returns MinPrefixLen for ids outside the set.
func (s *IDSet) PrefixLen(id string) int {
	if n, ok := s.prefixes[id]; ok {
		return n
	}
	return MinPrefixLen
}

func (s *IDSet) Format(id string, prefixStyle, restStyle lipgloss.Style) string {
	return FormatWithPrefix(id, s.PrefixLen(id), prefixStyle, restStyle)
}
