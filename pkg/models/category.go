package models

import (
	"errors"
	"fmt"
	"time"
)

type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// ParseCategoryStatus validates a status coming from a request path or body.
func ParseCategoryStatus(status string) (CategoryStatus, error) {
	switch status {
	case "active":
		return CategoryStatusActive, nil
	case "inactive":
		return CategoryStatusInactive, nil
	}

	err := fmt.Sprintf("Invalid category status from request: %v", status)

	return "", errors.New(err)
}

type Category struct {
	ID          string         `bson:"_id" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Slug        string         `bson:"slug" json:"slug"`
	Description string         `bson:"description" json:"description"`
	ParentID    string         `bson:"parent_id" json:"parentId"`
	Position    int            `bson:"position" json:"position"`
	Status      CategoryStatus `bson:"status" json:"status"`
	Deleted     bool           `bson:"deleted" json:"deleted"`
	DeletedAt   *time.Time     `bson:"deleted_at,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
	ModifiedAt  time.Time      `bson:"modified_at" json:"modifiedAt"`
}

// CategoryNode is a read-only view of a category and its nested children,
// rebuilt from a flat snapshot on every read.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

type CategoryRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=140"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ParentID    string `json:"parentId"`
	Position    int    `json:"position" validate:"omitempty,min=0"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CategoryUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=140"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ParentID    *string `json:"parentId"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CategoryStatusMultiRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,dive,required"`
	Status string   `json:"status" validate:"required"`
}

// CascadeFailure names a member of a cascade whose lookup or update failed.
type CascadeFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type CascadeResult struct {
	Affected int              `json:"affected"`
	Failed   []CascadeFailure `json:"failed,omitempty"`
}
