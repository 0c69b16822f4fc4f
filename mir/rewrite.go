// Package mir holds the mid-level representation of a compiled query and
// the rewrite passes that run over it between planning and lowering into
// the physical dataflow graph.
package mir

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Rewriter restores the structural invariants lowering relies on once a
// query has been planned into MIR: universe-local table qualifiers are
// mapped back to canonical names, security unions get materialized inputs,
// and columns referenced but not received are pulled up through ancestors.
type Rewriter struct {
	log           *zap.Logger
	schemaVersion int64
}

func NewRewriter(log *zap.Logger, schemaVersion int64) *Rewriter {
	return &Rewriter{log: log, schemaVersion: schemaVersion}
}

type RewriteOptions struct {
	// Mapping translates universe-qualified columns back to canonical
	// table names. Required whenever Secure is set.
	Mapping Mapping

	// BaseName names the universe's canonical base node. Set together
	// with Secure.
	BaseName string

	// Secure is set when the query compiles inside a security universe.
	Secure bool
}

// Rewrite runs the passes in their fixed order. The graph is mutated in
// place; on error it may be left partially rewritten and the compilation
// must be abandoned.
func (r *Rewriter) Rewrite(q *Query, opts RewriteOptions) error {
	log := r.log.With(
		zap.String("rewrite", uuid.New().String()),
		zap.String("query", q.Name),
	)

	if opts.Secure {
		if err := MakeUniverseNamingConsistent(q, opts.Mapping, opts.BaseName); err != nil {
			return err
		}
		log.Debug("universe naming made consistent", zap.String("base", opts.BaseName))
	}

	if q.hasSecurityUnions() {
		if err := ForceMaterializationAboveSecurityUnions(q, r.schemaVersion); err != nil {
			return err
		}
		log.Debug("materialization forced above security unions",
			zap.Int64("schema_version", r.schemaVersion))
	}

	if err := PullRequiredBaseColumns(q, opts.Mapping, opts.Secure); err != nil {
		return err
	}
	log.Debug("required base columns pulled")
	return nil
}

// PullRequiredBaseColumns pulls columns that a node references but does
// not receive from its immediate ancestors upward through the ancestor
// chain, so that lowering finds every column where it expects it.
//
// The traversal is a LIFO work-list from the leaf with no visited-set: a
// node reachable through multiple paths is processed more than once, which
// is safe because every addition checks "already present" first.
func PullRequiredBaseColumns(q *Query, mapping Mapping, secure bool) error {
	if secure && mapping == nil {
		return &MissingTableMappingError{Query: q.Name}
	}

	queue := []*Node{q.Leaf}
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		// a node needs all the columns it projects into its output, but it
		// may need more to do its own work; consider a filter that filters
		// on a column it doesn't project
		var needed Columns
		for _, c := range node.ReferencedColumns() {
			if !node.emittedByAncestor(c) {
				needed = append(needed, c)
			}
		}

		var found Columns
		for _, ancestor := range node.Ancestors {
			if len(ancestor.Ancestors) == 0 {
				// base tables cannot gain columns
				continue
			}
			for _, c := range needed {
				if mapping.Has(c) {
					// universe-mapped columns are the naming pass's
					// responsibility
					continue
				}
				if !found.Contains(c) && HasColumn(ancestor, c) {
					ancestor.AddColumn(c)
					found = append(found, c)
				}
			}
			queue = append(queue, ancestor)
		}
	}
	return nil
}

// ForceMaterializationAboveSecurityUnions makes sure every immediate
// ancestor of every security union is backed by materialized state,
// splicing in materialized identity nodes (or Reuse aliases of existing
// ones) where it is not. New nodes are stamped with schemaVersion.
func ForceMaterializationAboveSecurityUnions(q *Query, schemaVersion int64) error {
	queue := []*Node{q.Leaf}
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if node.Role == RoleUnion {
			if err := materializeUnionInputs(node, schemaVersion); err != nil {
				return err
			}
		}

		queue = append(queue, node.Ancestors...)
	}
	return nil
}

func materializeUnionInputs(union *Node, schemaVersion int64) error {
	type reuseEdge struct {
		ancestor *Node
		identity *Node
	}

	// classify first, splice after: splicing edits the ancestor list
	var toReuse []reuseEdge
	var toRewrite []*Node

outer:
	for _, ancestor := range union.Ancestors {
		if r, ok := ancestor.Op.(*Reuse); ok {
			if existing := checkReuseForIdentity(r.Node); existing != nil {
				toReuse = append(toReuse, reuseEdge{ancestor: ancestor, identity: existing})
				continue outer
			}
		}
		materialized, err := checkMaterialized(ancestor)
		if err != nil {
			return err
		}
		if !materialized {
			toRewrite = append(toRewrite, ancestor)
		}
	}

	for _, re := range toReuse {
		Unlink(re.ancestor, union)

		alias := NewNode(
			re.ancestor.Name+"_reuse_"+union.Name,
			schemaVersion,
			slices.Clone(re.identity.Columns),
			&Reuse{Node: re.identity},
		)
		alias.Origin = OriginMaterialization

		Link(re.ancestor, alias)
		Link(alias, union)
	}

	for _, ancestor := range toRewrite {
		Unlink(ancestor, union)

		id := NewNode(
			ancestor.Name+"_matid",
			schemaVersion,
			slices.Clone(ancestor.Columns),
			&Identity{Materialized: true},
		)
		id.Origin = OriginMaterialization

		Link(ancestor, id)
		Link(id, union)

		if r, ok := ancestor.Op.(*Reuse); ok {
			// reuse-detection for later unions starts from the canonical
			// target, so the identity must be reachable from there too
			Link(r.Node, id)
		}
	}
	return nil
}

// MakeUniverseNamingConsistent rewrites the table qualifiers of every
// column below the universe's base node back to the canonical schema,
// according to the catalog's mapping.
func MakeUniverseNamingConsistent(q *Query, mapping Mapping, baseName string) error {
	// find the node that is the base table of the universe
	var base *Node
	toCheck := []*Node{q.Leaf}
	for len(toCheck) > 0 {
		node := toCheck[len(toCheck)-1]
		toCheck = toCheck[:len(toCheck)-1]
		if node.Name == baseName {
			base = node
			break
		}
		toCheck = append(toCheck, node.Ancestors...)
	}
	if base == nil {
		return &BaseNodeNotFoundError{Base: baseName, Query: q.Name}
	}

	toRewrite := []*Node{base}
	for len(toRewrite) > 0 {
		node := toRewrite[len(toRewrite)-1]
		toRewrite = toRewrite[:len(toRewrite)-1]

		for i, col := range node.Columns {
			if col.Table == "" {
				continue
			}
			if canonical, ok := mapping[MappingKey{Column: col.Name, Table: col.Table}]; ok {
				node.Columns[i].Table = canonical
			}
		}

		toRewrite = append(toRewrite, node.Children...)
	}
	return nil
}

// PushAllBaseColumns pushes every node's columns downward into its
// children, starting from the roots. The leaf never gains columns: it is
// a virtual sink that lowering removes. Currently unused by Rewrite.
func PushAllBaseColumns(q *Query) {
	queue := slices.Clone(q.Roots)
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for _, child := range node.Children {
			if child.VersionedName() == q.Leaf.VersionedName() {
				continue
			}
			for _, c := range node.Columns {
				child.AddColumn(c)
			}
			queue = append(queue, child)
		}
	}
}
