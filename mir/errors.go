package mir

import "fmt"

// MissingTableMappingError is a caller contract violation: pulling columns
// inside a secure universe requires the catalog to have computed a table
// mapping first. The enclosing compilation must be aborted; the graph may
// be left partially rewritten.
type MissingTableMappingError struct {
	Query string
}

func (e *MissingTableMappingError) Error() string {
	return fmt.Sprintf("no table mapping computed for query %q, but in secure universe", e.Query)
}

// BaseNodeNotFoundError reports that the universe's canonical base node is
// not reachable from the query's leaf.
type BaseNodeNotFoundError struct {
	Base  string
	Query string
}

func (e *BaseNodeNotFoundError) Error() string {
	return fmt.Sprintf("no node named %q reachable from the leaf of query %q", e.Base, e.Query)
}

// MissingAncestorError reports a query-through node with no input. Project
// and Filter pass rows through from a single ancestor; a parentless one is
// malformed input from the planner.
type MissingAncestorError struct {
	Node string
}

func (e *MissingAncestorError) Error() string {
	return fmt.Sprintf("query-through node %q has no ancestors", e.Node)
}

type BugError struct {
	Msg string
}

func (e *BugError) Error() string {
	return "bug: " + e.Msg
}

// NewBug signals an internal invariant break that should never be
// reachable from user input.
func NewBug(msg string) error {
	return &BugError{Msg: msg}
}
