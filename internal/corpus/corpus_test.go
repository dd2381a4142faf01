package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	examples, err := Load()
	require.NoError(t, err)
	require.Len(t, examples, 5)

	seen := make(map[string]bool)
	for _, example := range examples {
		assert.NotEmpty(t, example.Name)
		assert.NotEmpty(t, example.Difficulty)
		assert.NotEmpty(t, example.Description)
		assert.NotEmpty(t, example.Text)
		assert.False(t, seen[example.Name], "duplicate example name %s", example.Name)
		seen[example.Name] = true
	}
}

func TestFind(t *testing.T) {
	example, err := Find("pharmacy")
	require.NoError(t, err)
	assert.Equal(t, "pharmacy", example.Name)
	assert.Contains(t, example.Text, "FARMACIA")

	_, err = Find("nonexistent")
	assert.Error(t, err)
}
