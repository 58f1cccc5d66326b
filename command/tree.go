// Package command maps multi-key sequences to actions and renders the
// grouped help shown while a sequence is pending.
package command

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a trie node: a leaf action, a menu of further keys, or both.
type Node struct {
	action   *Action
	children *children
}

type children struct {
	nodes  map[string]*Node
	groups []HelpGroup
}

// HelpEntry is one key and its description.
type HelpEntry struct {
	Key  string
	Text string
}

// HelpGroup is a titled list of help entries.
type HelpGroup struct {
	Name    string
	Entries []HelpEntry
}

// Leaf completes a key sequence.
func Leaf(a Action) *Node {
	return &Node{action: &a}
}

// Menu only leads to further keys.
func Menu() *Node {
	return &Node{children: &children{nodes: map[string]*Node{}}}
}

// Chained fires its action and then stays open for further keys.
func Chained(a Action) *Node {
	n := Menu()
	n.action = &a
	return n
}

func (n *Node) Action() (Action, bool) {
	if n.action == nil {
		return Action{}, false
	}
	return *n.action, true
}

func (n *Node) HasChildren() bool {
	return n.children != nil
}

// Help lists the node's children by group in registration order, each group
// sorted case-insensitively by help text.
func (n *Node) Help() []HelpGroup {
	if n.children == nil {
		return nil
	}
	groups := make([]HelpGroup, len(n.children.groups))
	for i, g := range n.children.groups {
		entries := append([]HelpEntry(nil), g.Entries...)
		sort.SliceStable(entries, func(a, b int) bool {
			return strings.ToLower(entries[a].Text) < strings.ToLower(entries[b].Text)
		})
		groups[i] = HelpGroup{Name: g.Name, Entries: entries}
	}
	return groups
}

func (c *children) add(group, help, key string, node *Node) {
	c.nodes[key] = node
	entry := HelpEntry{Key: displayKey(key), Text: help}
	for i := range c.groups {
		if c.groups[i].Name == group {
			c.groups[i].Entries = append(c.groups[i].Entries, entry)
			return
		}
	}
	c.groups = append(c.groups, HelpGroup{Name: group, Entries: []HelpEntry{entry}})
}

// Entry registers node under keys, with help text listed under group in the
// parent's help.
type Entry struct {
	Group string
	Help  string
	Keys  []string
	Node  *Node
}

// Tree is the root of the dispatch trie.
type Tree struct {
	root *Node
}

// NewTree builds the trie from entries in order. Every prefix of an entry's
// keys must already be registered as a menu; NewTree panics otherwise.
func NewTree(entries []Entry) *Tree {
	t := &Tree{root: Menu()}
	for _, e := range entries {
		if len(e.Keys) == 0 || e.Node == nil || (e.Node.action == nil && e.Node.children == nil) {
			panic(fmt.Sprintf("command: invalid entry %q", e.Help))
		}
		parent := t.Lookup(e.Keys[:len(e.Keys)-1])
		if parent == nil || parent.children == nil {
			panic(fmt.Sprintf("command: no menu at %v for %q", e.Keys[:len(e.Keys)-1], e.Help))
		}
		last := e.Keys[len(e.Keys)-1]
		if _, dup := parent.children.nodes[last]; dup {
			panic(fmt.Sprintf("command: %v registered twice", e.Keys))
		}
		parent.children.add(e.Group, e.Help, last, e.Node)
	}
	return t
}

// Lookup resolves a key sequence from the root. The empty sequence is the root.
func (t *Tree) Lookup(keys []string) *Node {
	n := t.root
	for _, k := range keys {
		if n.children == nil {
			return nil
		}
		next, ok := n.children.nodes[k]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

var navigationHelp = HelpGroup{Name: "Navigation", Entries: []HelpEntry{
	{"Tab ", "Toggle folding"},
	{"PgDn", "Move down page"},
	{"PgUp", "Move up page"},
	{"j/↓ ", "Move down"},
	{"k/↑ ", "Move up"},
	{"l/→ ", "Next sibling"},
	{"h/← ", "Prev sibling"},
	{"K", "Select parent"},
	{"@", "Select @ change"},
}}

var generalHelp = HelpGroup{Name: "General", Entries: []HelpEntry{
	{"Spc/Ctrl-r", "Refresh log tree"},
	{"Esc", "Clear app state"},
	{"L", "Set log revset"},
	{"I", "Toggle --ignore-immutable"},
	{"?", "Show help"},
	{"q", "Quit"},
}}

// Help is the top-level help: every command group plus the single-key
// navigation and general bindings.
func (t *Tree) Help() []HelpGroup {
	return append(t.root.Help(), navigationHelp, generalHelp)
}

func displayKey(key string) string {
	switch key {
	case "enter":
		return "Enter"
	case "tab":
		return "Tab"
	case " ":
		return "Spc"
	default:
		return key
	}
}
