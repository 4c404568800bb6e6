package domain

// Level is the depth of a node in the classification tree.
type Level int

const (
	LevelCategory      Level = 1
	LevelSubCategory   Level = 2
	LevelSpecification Level = 3
)

func (l Level) String() string {
	switch l {
	case LevelCategory:
		return "category"
	case LevelSubCategory:
		return "subcategory"
	case LevelSpecification:
		return "specification"
	default:
		return "unknown"
	}
}

func (l Level) Valid() bool {
	return l >= LevelCategory && l <= LevelSpecification
}

// Category is the top level of the tree, returned with its children embedded.
type Category struct {
	ID            ID            `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	SubCategories []SubCategory `json:"subCategories"`
}

type SubCategory struct {
	ID             ID              `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	ParentID       ID              `json:"parentId,omitempty"`
	Specifications []Specification `json:"specifications"`
}

// Specification is the leaf a product references.
type Specification struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    ID     `json:"parentId,omitempty"`
}
