package common

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Database collections
const (
	CategoryCollectionName = "ProductCategory"
	RoleCollectionName     = "Role"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS = 2 * 60 * time.Second
	PERMISSION_FORM_KEY  = "permissions"
)
