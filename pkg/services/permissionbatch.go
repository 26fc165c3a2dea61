package services

import (
	"bytes"
	"encoding/json"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/models"

	"github.com/pkg/errors"
)

// ParsePermissionBatch decodes a permission payload into assignments.
//
// The payload is a JSON array of {"id", "permissions"} objects. The admin
// form posts that array as a string field, so a top-level JSON string is
// unwrapped once. Any shape error fails the whole batch with
// ErrMalformedInput; duplicate keys within one entry are dropped.
func ParsePermissionBatch(raw []byte) ([]models.PermissionAssignment, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, withKind(ErrMalformedInput, errors.New("empty permission payload"))
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, withKind(ErrMalformedInput, errors.Wrap(err, "decode permission payload"))
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	var assignments []models.PermissionAssignment
	if err := json.Unmarshal(raw, &assignments); err != nil {
		return nil, withKind(ErrMalformedInput, errors.Wrap(err, "decode permission payload"))
	}
	if assignments == nil {
		return nil, withKind(ErrMalformedInput, errors.New("permission payload is not an array"))
	}

	for i := range assignments {
		if err := common.Validate.Struct(&assignments[i]); err != nil {
			return nil, withKind(ErrMalformedInput, errors.Wrapf(err, "permission entry %d", i))
		}
		assignments[i].Permissions = uniquePermissions(assignments[i].Permissions)
	}

	return assignments, nil
}

func uniquePermissions(permissions []string) []string {
	seen := make(map[string]bool, len(permissions))
	out := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		if seen[permission] {
			continue
		}
		seen[permission] = true
		out = append(out, permission)
	}
	return out
}
