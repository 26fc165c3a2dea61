package models

import "time"

type Role struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Permissions []string   `bson:"permissions" json:"permissions"`
	Deleted     bool       `bson:"deleted" json:"deleted"`
	DeletedAt   *time.Time `bson:"deleted_at,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	ModifiedAt  time.Time  `bson:"modified_at" json:"modifiedAt"`
}

type RoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=80"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

type RoleUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// PermissionAssignment replaces the whole permission set of one role.
type PermissionAssignment struct {
	RoleID      string   `json:"id" validate:"required"`
	Permissions []string `json:"permissions" validate:"required,dive,required"`
}

type PermissionResult struct {
	RoleID  string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
