package logtree

import (
	"fmt"
	"strings"
)

// DiffHunkLineIdx is the depth of diff line nodes. Positions are never longer
// than DiffHunkLineIdx+1.
const DiffHunkLineIdx = 3

// TreePosition addresses a node by its child index at every level, starting
// with the commit index.
type TreePosition []int

// Parent drops the last component. It reports false for commits.
func (p TreePosition) Parent() (TreePosition, bool) {
	if len(p) <= 1 {
		return nil, false
	}
	return p[:len(p)-1 : len(p)-1], true
}

func (p TreePosition) Clone() TreePosition {
	return append(TreePosition(nil), p...)
}

func (p TreePosition) Equal(other TreePosition) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsSibling reports whether p and other differ only in their last index.
func (p TreePosition) IsSibling(other TreePosition) bool {
	if len(p) == 0 || len(p) != len(other) {
		return false
	}
	return TreePosition(p[:len(p)-1]).Equal(other[:len(other)-1])
}

func (p TreePosition) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprint(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
