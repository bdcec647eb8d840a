// Package catalogtree turns the flat category table into the nested
// structure the storefront navigation and the admin category screens render.
package catalogtree

import (
	"sort"

	"github.com/pompadepo/pompa-market/app/models"
)

// BuildTree assembles a forest out of a flat category list. Every input
// record shows up exactly once: under its parent when the parent is part of
// the input, otherwise as a root. A category pointing at a parent that was
// deleted or filtered out is deliberately promoted to root instead of being
// dropped. Siblings are ordered by sort order, ties broken by name.
func BuildTree(categories []models.Category) []*models.Category {
	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].Name < sorted[j].Name
	})

	nodes := make(map[string]*models.Category, len(sorted))
	for i := range sorted {
		sorted[i].Children = nil
		nodes[sorted[i].ID] = &sorted[i]
	}

	var roots []*models.Category
	for i := range sorted {
		node := &sorted[i]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// DescendantIDs collects the ids of rootID and everything below it, walking
// an adjacency map iteratively so a corrupted parent chain cannot blow the
// stack.
func DescendantIDs(categories []models.Category, rootID string) map[string]bool {
	children := make(map[string][]string, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	collected := map[string]bool{rootID: true}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childID := range children[id] {
			if collected[childID] {
				continue
			}
			collected[childID] = true
			stack = append(stack, childID)
		}
	}
	return collected
}

// EligibleParents returns the categories a given category may be re-parented
// under: everything except itself and its own subtree. With an empty id (a
// new category) every category is eligible.
func EligibleParents(categories []models.Category, categoryID string) []models.Category {
	if categoryID == "" {
		return categories
	}
	exclude := DescendantIDs(categories, categoryID)
	eligible := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !exclude[c.ID] {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

type FlatNode struct {
	Category *models.Category
	Depth    int
}

// Flatten walks a forest depth-first and returns the nodes in display order,
// annotating each with its depth. The admin category table renders the tree
// as an indented list.
func Flatten(roots []*models.Category) []FlatNode {
	var flat []FlatNode
	type frame struct {
		node  *models.Category
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		flat = append(flat, FlatNode{Category: f.node, Depth: f.depth})
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
	return flat
}
