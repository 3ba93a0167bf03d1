package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("build")
	b := domain.NewInternedString("build")

	assert.Equal(t, a, b)
	assert.Equal(t, "build", a.String())
	assert.False(t, a.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	type recipeRef struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(recipeRef{Name: domain.NewInternedString("test")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"test"}`, string(data))

	var decoded recipeRef
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "test", decoded.Name.String())
}

func TestNewInternedStrings(t *testing.T) {
	names := domain.NewInternedStrings([]string{"build", "test", "build"})

	require.Len(t, names, 3)
	assert.Equal(t, "test", names[1].String())
	assert.Equal(t, names[0], names[2])
	assert.Empty(t, domain.NewInternedStrings(nil))
}
