package catalog

import (
	"strings"

	"catalog/admin/internal/domain"
	"catalog/admin/internal/validation"
)

// descriptionSuffix is appended to the name to form the Description the
// backend stores for every new node.
const descriptionSuffix = ".cat"

type CreateInput struct {
	Level    domain.Level `json:"level" validate:"min=1,max=3"`
	Name     string       `json:"name" validate:"required"`
	ParentID domain.ID    `json:"parentId" validate:"required_unless=Level 1"`
}

type UpdateInput struct {
	ID       domain.ID    `json:"id" validate:"required"`
	Level    domain.Level `json:"level" validate:"min=1,max=3"`
	Name     string       `json:"name" validate:"required"`
	ParentID domain.ID    `json:"parentId" validate:"required_unless=Level 1"`
}

// CreateBody is the payload of the three creation endpoints.
type CreateBody struct {
	Name          string       `json:"name"`
	Description   string       `json:"Description"`
	Level         domain.Level `json:"level"`
	ParentID      *domain.ID   `json:"parentId"`
	CategoryID    domain.ID    `json:"CategoryId,omitempty"`
	SubCategoryID domain.ID    `json:"SubCategoryId,omitempty"`
}

type UpdateBody struct {
	Name     string       `json:"name"`
	Level    domain.Level `json:"level"`
	ParentID *domain.ID   `json:"parentId"`
}

// CreateRequest is a validated creation, routed by Level.
type CreateRequest struct {
	Level domain.Level
	Body  CreateBody
}

type UpdateRequest struct {
	ID   domain.ID
	Body UpdateBody
}

func NewCreateRequest(in CreateInput) (*CreateRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ParentID = domain.ID(strings.TrimSpace(in.ParentID.String()))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	body := CreateBody{
		Name:        in.Name,
		Description: in.Name + descriptionSuffix,
		Level:       in.Level,
	}

	switch in.Level {
	case domain.LevelSubCategory:
		body.ParentID = parentRef(in.ParentID)
		body.CategoryID = in.ParentID
	case domain.LevelSpecification:
		body.ParentID = parentRef(in.ParentID)
		body.SubCategoryID = in.ParentID
	}

	return &CreateRequest{Level: in.Level, Body: body}, nil
}

func NewUpdateRequest(in UpdateInput) (*UpdateRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ParentID = domain.ID(strings.TrimSpace(in.ParentID.String()))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	body := UpdateBody{Name: in.Name, Level: in.Level}
	if in.Level != domain.LevelCategory {
		body.ParentID = parentRef(in.ParentID)
	}
	return &UpdateRequest{ID: in.ID, Body: body}, nil
}

func parentRef(id domain.ID) *domain.ID {
	return &id
}
