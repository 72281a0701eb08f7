package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewForm struct {
	Status string `json:"status" validate:"required,is-review-status"`
	Notes  string `json:"admin_notes" validate:"max=20"`
}

type roleForm struct {
	Roles []string `json:"roles" validate:"dive,is-user-role"`
	Type  string   `json:"job_type" validate:"is-job-type"`
}

func TestValidate_ReviewStatus(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&reviewForm{Status: "accepted"}))
	assert.NoError(t, v.Validate(&reviewForm{Status: "rejected"}))

	err := v.Validate(&reviewForm{Status: "pending"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: accepted, rejected", vErr.Errors["status"])
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&reviewForm{Status: "accepted", Notes: "this note is definitely longer than twenty"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "admin_notes")
}

func TestValidate_RolesAndJobType(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&roleForm{Roles: []string{"user", "admin"}, Type: "full-time"}))

	err := v.Validate(&roleForm{Roles: []string{"superuser"}, Type: "gig"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Len(t, vErr.Errors, 2)
	assert.Contains(t, vErr.Error(), "Validation failed")
}
