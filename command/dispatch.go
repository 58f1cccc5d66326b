package command

import "fmt"

// UnboundKeyError reports a key with no binding after the pending sequence.
type UnboundKeyError struct {
	Key string
}

func (e *UnboundKeyError) Error() string {
	return fmt.Sprintf("Unbound suffix: '%s'", displayKey(e.Key))
}

// Outcome is the result of a bound key. Help is set when more keys can
// follow; Action is set when the sequence resolved to an action.
type Outcome struct {
	Action *Action
	Help   []HelpGroup
}

// Dispatcher tracks the keys typed so far.
type Dispatcher struct {
	tree    *Tree
	pending []string
}

func NewDispatcher(tree *Tree) *Dispatcher {
	return &Dispatcher{tree: tree}
}

// Pending returns the keys typed since the last completed sequence.
func (d *Dispatcher) Pending() []string {
	return append([]string(nil), d.pending...)
}

func (d *Dispatcher) Reset() {
	d.pending = nil
}

func (d *Dispatcher) Tree() *Tree {
	return d.tree
}

// HandleKey extends the pending sequence with key. A chained action keeps
// the sequence so the destination keys can follow. An unbound key returns
// *UnboundKeyError and clears the sequence; past a chained action only the
// unbound key is dropped.
func (d *Dispatcher) HandleKey(key string) (Outcome, error) {
	d.pending = append(d.pending, key)

	node := d.tree.Lookup(d.pending)
	if node == nil {
		d.pending = d.pending[:len(d.pending)-1]
		if !d.inChain() {
			d.Reset()
		}
		return Outcome{}, &UnboundKeyError{Key: key}
	}

	var out Outcome
	if node.HasChildren() {
		out.Help = node.Help()
	}
	if a, ok := node.Action(); ok {
		out.Action = &a
		if !node.HasChildren() {
			d.Reset()
		}
	}
	return out, nil
}

// inChain reports whether the pending sequence passes through a chained
// action.
func (d *Dispatcher) inChain() bool {
	for i := 1; i <= len(d.pending); i++ {
		n := d.tree.Lookup(d.pending[:i])
		if n != nil && n.action != nil && n.children != nil {
			return true
		}
	}
	return false
}
