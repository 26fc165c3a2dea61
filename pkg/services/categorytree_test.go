package services_test

import (
	"testing"

	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id, parent string, position int) models.Category {
	return models.Category{ID: id, Title: "Category " + id, ParentID: parent, Position: position}
}

func ids(categories []models.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.ID)
	}
	return out
}

func nodeIDs(nodes []*models.CategoryNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildCategoryTree_ContainsEveryRecordOnce(t *testing.T) {
	input := []models.Category{
		cat("shoes", "", 2),
		cat("sneakers", "shoes", 1),
		cat("boots", "shoes", 2),
		cat("clothing", "", 1),
		cat("running", "sneakers", 0),
		cat("shirts", "clothing", 1),
	}

	tree := services.BuildCategoryTree(input, "")

	assert.ElementsMatch(t, ids(input), ids(services.FlattenCategoryTree(tree)))
	assert.Len(t, services.FlattenCategoryTree(tree), len(input))
}

func TestBuildCategoryTree_RootsAndNesting(t *testing.T) {
	input := []models.Category{
		cat("shoes", "", 2),
		cat("sneakers", "shoes", 1),
		cat("clothing", "", 1),
		cat("running", "sneakers", 1),
	}

	tree := services.BuildCategoryTree(input, "")

	require.Equal(t, []string{"clothing", "shoes"}, nodeIDs(tree))
	shoes := tree[1]
	require.Equal(t, []string{"sneakers"}, nodeIDs(shoes.Children))
	assert.Equal(t, []string{"running"}, nodeIDs(shoes.Children[0].Children))
	assert.Empty(t, tree[0].Children)
	assert.NotNil(t, tree[0].Children)
}

func TestBuildCategoryTree_SiblingOrder(t *testing.T) {
	input := []models.Category{
		cat("c", "", 0),
		cat("a", "", 3),
		cat("b", "", 1),
		cat("d", "", 3),
		cat("e", "", 0),
	}

	tree := services.BuildCategoryTree(input, "")

	// positioned first, ties and missing positions by input order
	assert.Equal(t, []string{"b", "a", "d", "c", "e"}, nodeIDs(tree))
}

func TestBuildCategoryTree_CustomRootKey(t *testing.T) {
	input := []models.Category{
		cat("a", "top", 1),
		cat("b", "top", 2),
		cat("c", "a", 1),
		cat("d", "", 3),
	}

	tree := services.BuildCategoryTree(input, "top")

	assert.Equal(t, []string{"a", "b", "d"}, nodeIDs(tree))
	assert.Equal(t, []string{"c"}, nodeIDs(tree[0].Children))
}

func TestBuildCategoryTree_OrphanPromotedToRoot(t *testing.T) {
	input := []models.Category{
		cat("a", "", 1),
		cat("orphan", "deleted-parent", 2),
		cat("child", "orphan", 1),
	}

	tree := services.BuildCategoryTree(input, "")

	assert.Equal(t, []string{"a", "orphan"}, nodeIDs(tree))
	assert.Equal(t, []string{"child"}, nodeIDs(tree[1].Children))
}

func TestBuildCategoryTree_Cycles(t *testing.T) {
	t.Run("two node cycle", func(t *testing.T) {
		input := []models.Category{
			cat("root", "", 1),
			cat("A", "B", 1),
			cat("B", "A", 1),
		}

		tree := services.BuildCategoryTree(input, "")

		flat := services.FlattenCategoryTree(tree)
		assert.ElementsMatch(t, []string{"root", "A", "B"}, ids(flat))
		assert.Len(t, flat, 3)
	})

	t.Run("self parent", func(t *testing.T) {
		input := []models.Category{cat("A", "A", 1)}

		tree := services.BuildCategoryTree(input, "")

		require.Len(t, tree, 1)
		assert.Equal(t, "A", tree[0].ID)
		assert.Empty(t, tree[0].Children)
	})

	t.Run("cycle below a root", func(t *testing.T) {
		input := []models.Category{
			cat("A", "", 1),
			cat("B", "A", 1),
			cat("C", "B", 1),
			cat("D", "C", 1),
			cat("E", "D", 1),
			cat("F", "E", 1),
			// X and Y point at each other and at nothing reachable
			cat("X", "Y", 1),
			cat("Y", "X", 1),
		}

		tree := services.BuildCategoryTree(input, "")

		flat := services.FlattenCategoryTree(tree)
		assert.ElementsMatch(t, ids(input), ids(flat))
		assert.Len(t, flat, len(input))
	})
}

func TestBuildCategoryTree_EmptyInput(t *testing.T) {
	tree := services.BuildCategoryTree(nil, "")

	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestBuildCategoryTree_DoesNotFilterDeleted(t *testing.T) {
	deleted := cat("gone", "", 1)
	deleted.Deleted = true

	tree := services.BuildCategoryTree([]models.Category{deleted, cat("live", "gone", 1)}, "")

	require.Equal(t, []string{"gone"}, nodeIDs(tree))
	assert.Equal(t, []string{"live"}, nodeIDs(tree[0].Children))
}
