package services

import (
	"sort"

	"khoomi-api-io/backoffice/pkg/models"
)

// BuildCategoryTree nests a flat category snapshot under rootParentID.
//
// A record is a root when its parent equals rootParentID, when its parent is
// not part of the snapshot, or when it is only reachable through a parent
// cycle. Every record appears exactly once. Filtering deleted records is the
// caller's job.
func BuildCategoryTree(categories []models.Category, rootParentID string) []*models.CategoryNode {
	present := make(map[string]bool, len(categories))
	for _, category := range categories {
		present[category.ID] = true
	}

	children := make(map[string][]int)
	var roots []int
	for i, category := range categories {
		if category.ParentID == rootParentID || category.ParentID == "" || !present[category.ParentID] {
			roots = append(roots, i)
			continue
		}
		children[category.ParentID] = append(children[category.ParentID], i)
	}

	for parentID := range children {
		sortSiblings(categories, children[parentID])
	}
	sortSiblings(categories, roots)

	placed := make([]bool, len(categories))
	seenID := make(map[string]bool, len(categories))

	var build func(i int) *models.CategoryNode
	build = func(i int) *models.CategoryNode {
		placed[i] = true
		seenID[categories[i].ID] = true
		node := &models.CategoryNode{
			Category: categories[i],
			Children: []*models.CategoryNode{},
		}
		for _, child := range children[categories[i].ID] {
			// a child already placed, or whose id is already in the tree,
			// closes a cycle; it stays where it was first attached.
			if placed[child] || seenID[categories[child].ID] {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]*models.CategoryNode, 0, len(roots))
	for _, i := range roots {
		if placed[i] {
			continue
		}
		tree = append(tree, build(i))
	}

	// whatever is left hangs off a cycle with no way in from a root.
	for i := range categories {
		if placed[i] {
			continue
		}
		if seenID[categories[i].ID] {
			// duplicate id in the snapshot; keep it visible as a leaf root.
			placed[i] = true
			tree = append(tree, &models.CategoryNode{Category: categories[i], Children: []*models.CategoryNode{}})
			continue
		}
		tree = append(tree, build(i))
	}

	return tree
}

// sortSiblings orders by position ascending; a zero position counts as
// missing and sorts after positioned siblings. Ties keep input order.
func sortSiblings(categories []models.Category, idx []int) {
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := categories[idx[a]].Position, categories[idx[b]].Position
		switch {
		case pa <= 0 && pb <= 0:
			return false
		case pa <= 0:
			return false
		case pb <= 0:
			return true
		}
		return pa < pb
	})
}

// FlattenCategoryTree walks the tree depth first and returns every node's
// category in visit order.
func FlattenCategoryTree(tree []*models.CategoryNode) []models.Category {
	var out []models.Category
	var walk func(nodes []*models.CategoryNode)
	walk = func(nodes []*models.CategoryNode) {
		for _, node := range nodes {
			out = append(out, node.Category)
			walk(node.Children)
		}
	}
	walk(tree)
	return out
}
