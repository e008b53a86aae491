package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(models.RegisterRequest{FirstName: "A", LastName: "Lovelace", Email: "nope", Password: "123"})
	require.Error(t, err)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, d := range verr.Details {
		fields[d.Field] = d.Message
	}
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.NotContains(t, fields, "lastName")
	assert.Equal(t, "firstName must be at least 2 characters", fields["firstName"])
}

func TestValidatePostContentBounds(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.CreatePostRequest{Content: "hello"}))
	assert.True(t, apperr.IsValidation(v.Validate(models.CreatePostRequest{Content: ""})))
	assert.True(t, apperr.IsValidation(v.Validate(models.CreatePostRequest{Content: strings.Repeat("x", 1001)})))
}

func TestValidateOptionalUpdateFields(t *testing.T) {
	v := NewValidator()
	short := "A"

	assert.NoError(t, v.Validate(models.UpdateUserRequest{}))
	assert.True(t, apperr.IsValidation(v.Validate(models.UpdateUserRequest{FirstName: &short})))
}
