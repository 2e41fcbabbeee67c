package imagedef

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecs_deployment", "imagedefinitions.json")

	err := Write(path, "web-api", "123456789012.dkr.ecr.us-east-1.amazonaws.com/web-api:abc123")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var defs []Definition
	require.NoError(t, json.Unmarshal(data, &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "web-api", defs[0].Name)
	assert.Equal(t, "123456789012.dkr.ecr.us-east-1.amazonaws.com/web-api:abc123", defs[0].ImageUri)
}

func TestWrite_EmptyArguments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagedefinitions.json")

	assert.Error(t, Write(path, "", "nginx:1.23.3"))
	assert.Error(t, Write(path, "web-api", ""))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
