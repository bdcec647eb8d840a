package catalogtree

import (
	"testing"

	"github.com/pompadepo/pompa-market/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id, name string, parentID string, sortOrder int) models.Category {
	c := models.Category{ID: id, Name: name, SortOrder: sortOrder}
	if parentID != "" {
		c.ParentID = &parentID
	}
	return c
}

func names(nodes []*models.Category) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestBuildTree(t *testing.T) {
	categories := []models.Category{
		cat("pumps", "Pompalar", "", 0),
		cat("parts", "Yedek Parçalar", "", 1),
		cat("centrifugal", "Santrifüj", "pumps", 1),
		cat("submersible", "Dalgıç", "pumps", 0),
		cat("seals", "Salmastralar", "parts", 0),
	}

	roots := BuildTree(categories)

	require.Len(t, roots, 2)
	assert.Equal(t, []string{"Pompalar", "Yedek Parçalar"}, names(roots))
	assert.Equal(t, []string{"Dalgıç", "Santrifüj"}, names(roots[0].Children))
	assert.Equal(t, []string{"Salmastralar"}, names(roots[1].Children))
}

func TestBuildTreeOrphanPromotedToRoot(t *testing.T) {
	categories := []models.Category{
		cat("pumps", "Pompalar", "", 0),
		cat("lost", "Kayıp Kategori", "deleted-parent", 1),
	}

	roots := BuildTree(categories)

	require.Len(t, roots, 2)
	assert.Equal(t, []string{"Pompalar", "Kayıp Kategori"}, names(roots))
}

func TestBuildTreeSiblingOrderTieBrokenByName(t *testing.T) {
	categories := []models.Category{
		cat("b", "Beta", "", 5),
		cat("a", "Alfa", "", 5),
		cat("c", "Cetvel", "", 1),
	}

	roots := BuildTree(categories)

	assert.Equal(t, []string{"Cetvel", "Alfa", "Beta"}, names(roots))
}

func TestBuildTreeDoesNotMutateInput(t *testing.T) {
	categories := []models.Category{
		cat("pumps", "Pompalar", "", 0),
		cat("centrifugal", "Santrifüj", "pumps", 0),
	}

	BuildTree(categories)

	assert.Nil(t, categories[0].Children)
}

func TestDescendantIDs(t *testing.T) {
	categories := []models.Category{
		cat("root", "Root", "", 0),
		cat("child", "Child", "root", 0),
		cat("grandchild", "Grandchild", "child", 0),
		cat("other", "Other", "", 0),
	}

	ids := DescendantIDs(categories, "root")

	assert.True(t, ids["root"])
	assert.True(t, ids["child"])
	assert.True(t, ids["grandchild"])
	assert.False(t, ids["other"])
}

func TestEligibleParents(t *testing.T) {
	categories := []models.Category{
		cat("root", "Root", "", 0),
		cat("child", "Child", "root", 0),
		cat("other", "Other", "", 0),
	}

	t.Run("new category may go anywhere", func(t *testing.T) {
		assert.Len(t, EligibleParents(categories, ""), 3)
	})

	t.Run("own subtree excluded", func(t *testing.T) {
		eligible := EligibleParents(categories, "root")
		require.Len(t, eligible, 1)
		assert.Equal(t, "other", eligible[0].ID)
	})
}

func TestFlatten(t *testing.T) {
	categories := []models.Category{
		cat("pumps", "Pompalar", "", 0),
		cat("centrifugal", "Santrifüj", "pumps", 0),
		cat("parts", "Yedek Parçalar", "", 1),
	}

	flat := Flatten(BuildTree(categories))

	require.Len(t, flat, 3)
	assert.Equal(t, "Pompalar", flat[0].Category.Name)
	assert.Equal(t, 0, flat[0].Depth)
	assert.Equal(t, "Santrifüj", flat[1].Category.Name)
	assert.Equal(t, 1, flat[1].Depth)
	assert.Equal(t, "Yedek Parçalar", flat[2].Category.Name)
	assert.Equal(t, 0, flat[2].Depth)
}
