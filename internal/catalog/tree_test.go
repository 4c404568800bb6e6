package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/admin/internal/domain"
)

func electronics() []domain.Category {
	return []domain.Category{
		{
			ID:   "1",
			Name: "Electronics",
			SubCategories: []domain.SubCategory{
				{
					ID: "10", Name: "Phones", ParentID: "1",
					Specifications: []domain.Specification{
						{ID: "100", Name: "128GB", ParentID: "10"},
						{ID: "101", Name: "256GB", ParentID: "10"},
					},
				},
				{ID: "11", Name: "Laptops", ParentID: "1"},
			},
		},
		{
			ID:   "2",
			Name: "Garden",
			SubCategories: []domain.SubCategory{
				{
					ID: "20", Name: "Tools",
					Specifications: []domain.Specification{{ID: "200", Name: "Steel"}},
				},
			},
		},
	}
}

func TestBuildAndListLevels(t *testing.T) {
	tree, err := Build(electronics())
	require.NoError(t, err)
	assert.Equal(t, 8, tree.Len())

	assert.Equal(t, []Option{{ID: "1", Name: "Electronics"}, {ID: "2", Name: "Garden"}}, tree.ListLevel1())
	assert.Equal(t, []Option{{ID: "10", Name: "Phones"}, {ID: "11", Name: "Laptops"}}, tree.ListLevel2("1"))
	assert.Equal(t, []Option{{ID: "100", Name: "128GB"}, {ID: "101", Name: "256GB"}}, tree.ListLevel3("10"))
}

func TestListLevel3Scenario(t *testing.T) {
	tree, err := Build([]domain.Category{{
		ID: "1", Name: "Electronics",
		SubCategories: []domain.SubCategory{{
			ID: "10", Name: "C1.1", ParentID: "1",
			Specifications: []domain.Specification{{ID: "100", Name: "C1.1.1", ParentID: "10"}},
		}},
	}})
	require.NoError(t, err)

	assert.Equal(t, []Option{{ID: "100", Name: "C1.1.1"}}, tree.ListLevel3("10"))
	assert.Empty(t, tree.ListLevel3("99"))
	assert.NotNil(t, tree.ListLevel3("99"))
}

func TestListLevel2ReturnsOnlyEmbeddedChildren(t *testing.T) {
	tree, err := Build(electronics())
	require.NoError(t, err)

	assert.Equal(t, []Option{{ID: "20", Name: "Tools"}}, tree.ListLevel2("2"))
	assert.Empty(t, tree.ListLevel2("10"), "a subcategory id is not a category")
	assert.Empty(t, tree.ListLevel2("404"))
	assert.Empty(t, tree.ListLevel3("11"), "leafless subcategory")
}

func TestBuildAdoptsEmbeddingParent(t *testing.T) {
	tree, err := Build(electronics())
	require.NoError(t, err)

	n, ok := tree.Node(domain.LevelSpecification, "200")
	require.True(t, ok)
	assert.Equal(t, domain.ID("20"), n.ParentID)

	path, ok := tree.Path(domain.LevelSpecification, "200")
	require.True(t, ok)
	assert.Equal(t, "Garden / Tools / Steel", path)
}

func TestBuildSkipsInconsistentSpecification(t *testing.T) {
	cats := electronics()
	cats[0].SubCategories[0].Specifications[0].ParentID = "11"

	tree, err := Build(cats)
	require.NoError(t, err)
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, []Option{{ID: "101", Name: "256GB"}}, tree.ListLevel3("10"))
	assert.Empty(t, tree.ListLevel3("11"))

	require.Len(t, tree.Problems(), 1)
	assert.ErrorIs(t, tree.Problems()[0], ErrParentMismatch)
}

func TestBuildKeepsOtherCategoriesWhenSubcategoryMismatches(t *testing.T) {
	cats := electronics()
	cats[1].SubCategories[0].ParentID = "3"

	tree, err := Build(cats)
	require.NoError(t, err)

	assert.Equal(t, []Option{{ID: "1", Name: "Electronics"}, {ID: "2", Name: "Garden"}}, tree.ListLevel1())
	assert.Equal(t, []Option{{ID: "10", Name: "Phones"}, {ID: "11", Name: "Laptops"}}, tree.ListLevel2("1"))
	assert.Equal(t, []Option{{ID: "100", Name: "128GB"}, {ID: "101", Name: "256GB"}}, tree.ListLevel3("10"))
	assert.Empty(t, tree.ListLevel2("2"))

	_, ok := tree.Node(domain.LevelSpecification, "200")
	assert.False(t, ok, "the subtree of a skipped row is dropped")

	require.Len(t, tree.Problems(), 1)
	assert.ErrorIs(t, tree.Problems()[0], ErrParentMismatch)
	assert.Contains(t, tree.Problems()[0].Error(), "declares 3, embedded under 2")
}

func TestFindAcrossLevels(t *testing.T) {
	tree, err := Build([]domain.Category{{
		ID: "1", Name: "A",
		SubCategories: []domain.SubCategory{{
			ID: "1", Name: "B",
			Specifications: []domain.Specification{{ID: "7", Name: "C"}},
		}},
	}})
	require.NoError(t, err)

	found := tree.Find("7")
	require.Len(t, found, 1)
	assert.Equal(t, domain.LevelSpecification, found[0].Level)
	assert.Equal(t, domain.ID("1"), found[0].ParentID)

	assert.Len(t, tree.Find("1"), 2)
	assert.Empty(t, tree.Find("404"))
}

func TestBuildRejectsDuplicateWithinLevel(t *testing.T) {
	cats := electronics()
	cats[1].SubCategories[0].ID = "10"

	_, err := Build(cats)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBuildAllowsSameIDOnDifferentLevels(t *testing.T) {
	_, err := Build([]domain.Category{{
		ID: "1", Name: "A",
		SubCategories: []domain.SubCategory{{
			ID: "1", Name: "B",
			Specifications: []domain.Specification{{ID: "1", Name: "C"}},
		}},
	}})
	assert.NoError(t, err)
}

func TestParentOptionsAndLeaves(t *testing.T) {
	tree, err := Build(electronics())
	require.NoError(t, err)

	assert.Empty(t, tree.ParentOptions(domain.LevelCategory))
	assert.Equal(t, tree.ListLevel1(), tree.ParentOptions(domain.LevelSubCategory))
	assert.Equal(t, []Option{
		{ID: "10", Name: "Phones"}, {ID: "11", Name: "Laptops"}, {ID: "20", Name: "Tools"},
	}, tree.ParentOptions(domain.LevelSpecification))
	assert.Equal(t, []Option{
		{ID: "100", Name: "128GB"}, {ID: "101", Name: "256GB"}, {ID: "200", Name: "Steel"},
	}, tree.Leaves())
}

func TestEmptyTree(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, tree.ListLevel1())
	assert.Empty(t, tree.Leaves())

	_, ok := tree.Path(domain.LevelCategory, "1")
	assert.False(t, ok)
}

func TestWalkVisitsDepthFirst(t *testing.T) {
	tree, err := Build(electronics())
	require.NoError(t, err)

	var names []string
	tree.Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"Electronics", "Phones", "128GB", "256GB", "Laptops", "Garden", "Tools", "Steel"}, names)
}
