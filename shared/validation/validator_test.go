package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	errs := v.Struct(samplePayload{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.Nil(t, errs)
}

func TestStruct_FieldLevelMessages(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	errs := v.Struct(samplePayload{Email: "not-an-email", Password: "short"})
	require.Len(t, errs, 3)

	// Keys come from the json tags, not the Go field names.
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}
