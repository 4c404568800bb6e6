package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catalog/admin/internal/domain"

	log "github.com/sirupsen/logrus"
)

var (
	ErrDuplicateID    = errors.New("duplicate id in category tree")
	ErrParentMismatch = errors.New("child parentId does not match its parent")
)

// Option is an {id, name} pair used to fill cascading selects.
type Option struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

type Node struct {
	ID          domain.ID
	Name        string
	Description string
	Level       domain.Level
	ParentID    domain.ID
	Children    []domain.ID
}

type nodeKey struct {
	level domain.Level
	id    domain.ID
}

// Tree is the three-level classification held as an arena of nodes.
// Ids are unique within a level; the backend keeps one table per level,
// so the same id may appear on two different levels.
type Tree struct {
	nodes    map[nodeKey]*Node
	roots    []domain.ID
	problems []error
}

// Build normalizes the nested category payload. A child with an empty
// parentId adopts the parent it is embedded in. A child declaring a
// different parent is left out together with its subtree and reported
// through Problems; a duplicate id within a level fails the build.
func Build(categories []domain.Category) (*Tree, error) {
	t := &Tree{
		nodes: make(map[nodeKey]*Node),
		roots: make([]domain.ID, 0, len(categories)),
	}

	for _, c := range categories {
		if err := t.add(domain.LevelCategory, c.ID, c.Name, c.Description, ""); err != nil {
			return nil, err
		}
		t.roots = append(t.roots, c.ID)

		for _, sc := range c.SubCategories {
			if !t.consistent(domain.LevelSubCategory, sc.ID, sc.ParentID, c.ID) {
				continue
			}
			if err := t.add(domain.LevelSubCategory, sc.ID, sc.Name, sc.Description, c.ID); err != nil {
				return nil, err
			}

			for _, sp := range sc.Specifications {
				if !t.consistent(domain.LevelSpecification, sp.ID, sp.ParentID, sc.ID) {
					continue
				}
				if err := t.add(domain.LevelSpecification, sp.ID, sp.Name, sp.Description, sc.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	return t, nil
}

// Problems lists the rows Build skipped.
func (t *Tree) Problems() []error {
	return t.problems
}

func (t *Tree) consistent(level domain.Level, id, declaredParent, parent domain.ID) bool {
	if declaredParent.IsZero() || declaredParent == parent {
		return true
	}
	err := fmt.Errorf("%w: %s %s declares %s, embedded under %s", ErrParentMismatch, level, id, declaredParent, parent)
	log.Warnf("⚠️ Skipping category row: %v", err)
	t.problems = append(t.problems, err)
	return false
}

func (t *Tree) add(level domain.Level, id domain.ID, name, description string, parent domain.ID) error {
	key := nodeKey{level: level, id: id}
	if _, exists := t.nodes[key]; exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateID, level, id)
	}

	t.nodes[key] = &Node{
		ID:          id,
		Name:        name,
		Description: description,
		Level:       level,
		ParentID:    parent,
	}

	if level > domain.LevelCategory {
		p := t.nodes[nodeKey{level: level - 1, id: parent}]
		p.Children = append(p.Children, id)
	}
	return nil
}

// Find returns every node carrying the given id, one per level at most.
func (t *Tree) Find(id domain.ID) []*Node {
	out := make([]*Node, 0, 1)
	for level := domain.LevelCategory; level <= domain.LevelSpecification; level++ {
		if n, ok := t.Node(level, id); ok {
			out = append(out, n)
		}
	}
	return out
}

// Node returns the node with the given id on the given level.
func (t *Tree) Node(level domain.Level, id domain.ID) (*Node, bool) {
	n, ok := t.nodes[nodeKey{level: level, id: id}]
	return n, ok
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) ListLevel1() []Option {
	return t.options(domain.LevelCategory, t.roots)
}

// ListLevel2 lists the subcategories of a category. Unknown parents give an empty list.
func (t *Tree) ListLevel2(parentID domain.ID) []Option {
	return t.children(domain.LevelCategory, parentID)
}

// ListLevel3 lists the specifications of a subcategory.
func (t *Tree) ListLevel3(parentID domain.ID) []Option {
	return t.children(domain.LevelSubCategory, parentID)
}

// ParentOptions lists the nodes that can parent a new node of the given level.
func (t *Tree) ParentOptions(level domain.Level) []Option {
	switch level {
	case domain.LevelSubCategory:
		return t.ListLevel1()
	case domain.LevelSpecification:
		out := make([]Option, 0)
		for _, root := range t.roots {
			out = append(out, t.ListLevel2(root)...)
		}
		return out
	default:
		return []Option{}
	}
}

// Leaves lists every specification in payload order.
func (t *Tree) Leaves() []Option {
	out := make([]Option, 0)
	for _, sub := range t.ParentOptions(domain.LevelSpecification) {
		out = append(out, t.ListLevel3(sub.ID)...)
	}
	return out
}

// Path renders the breadcrumb of a node, e.g. "Electronics / Phones / 128GB".
func (t *Tree) Path(level domain.Level, id domain.ID) (string, bool) {
	parts := make([]string, 0, 3)
	for level >= domain.LevelCategory {
		n, ok := t.Node(level, id)
		if !ok {
			return "", false
		}
		parts = append([]string{n.Name}, parts...)
		id = n.ParentID
		level--
	}
	return strings.Join(parts, " / "), true
}

func (t *Tree) children(level domain.Level, parentID domain.ID) []Option {
	n, ok := t.Node(level, parentID)
	if !ok {
		return []Option{}
	}
	return t.options(level+1, n.Children)
}

func (t *Tree) options(level domain.Level, ids []domain.ID) []Option {
	out := make([]Option, 0, len(ids))
	for _, id := range ids {
		n := t.nodes[nodeKey{level: level, id: id}]
		out = append(out, Option{ID: n.ID, Name: n.Name})
	}
	return out
}

// Walk visits every node depth first in payload order.
func (t *Tree) Walk(fn func(n *Node)) {
	var visit func(level domain.Level, id domain.ID)
	visit = func(level domain.Level, id domain.ID) {
		n := t.nodes[nodeKey{level: level, id: id}]
		fn(n)
		for _, child := range n.Children {
			visit(level+1, child)
		}
	}
	for _, root := range t.roots {
		visit(domain.LevelCategory, root)
	}
}
