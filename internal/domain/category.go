package domain

// Category is a node in the catalog tree, stored as an adjacency list.
type Category struct {
	ID       int64
	Title    string
	ParentID *int64
}

// CategoryNode is a category together with its resolved children, assembled
// in memory for tree responses.
type CategoryNode struct {
	Category
	Children []*CategoryNode
}

// BuildCategoryTree assembles root nodes with nested children from a flat
// list. Orphans whose parent is missing from the input are dropped.
func BuildCategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &CategoryNode{Category: categories[i]}
	}

	var roots []*CategoryNode
	for _, cat := range categories {
		node := nodes[cat.ID]
		if cat.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*cat.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}
