package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficWeights(t *testing.T) {
	// The canary ratio is fixed configuration, not a tunable.
	assert.Equal(t, 1, OneboxWeight)
	assert.Equal(t, 99, FleetWeight)
	assert.Equal(t, 100, OneboxWeight+FleetWeight)
}

func TestCapacityBounds(t *testing.T) {
	tests := []struct {
		name              string
		min, desired, max int
	}{
		{"onebox", OneboxMinCapacity, OneboxDesiredCount, OneboxMaxCapacity},
		{"fleet", FleetMinCapacity, FleetDesiredCount, FleetMaxCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.LessOrEqual(t, tt.min, tt.desired)
			assert.LessOrEqual(t, tt.desired, tt.max)
		})
	}

	// The onebox pool must stay large enough to produce meaningful latency
	// samples at one percent of traffic.
	assert.GreaterOrEqual(t, OneboxMinCapacity, 3)
	assert.GreaterOrEqual(t, FleetMinCapacity, 10)
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		stackName string
		want      bool
	}{
		{"web-api-prod", true},
		{"web-api-PROD", true},
		{"production-eu", true},
		{"web-api-sandbox", false},
		{"dev", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.stackName, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProduction(tt.stackName))
		})
	}
}

func TestResolveRuntimeImage_Production(t *testing.T) {
	// Production never depends on a local build context.
	image, err := ResolveRuntimeImage("web-api-prod", "does/not/exist")
	require.NoError(t, err)
	assert.Equal(t, BootstrapImage, image)
}

func TestResolveRuntimeImage_Sandbox(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644))

	image, err := ResolveRuntimeImage("web-api-sandbox", dir)
	require.NoError(t, err)
	assert.Contains(t, image, RuntimeRepositoryName+":")
	assert.Len(t, image, len(RuntimeRepositoryName)+1+12)
}

func TestResolveRuntimeImage_MissingContext(t *testing.T) {
	_, err := ResolveRuntimeImage("web-api-sandbox", "does/not/exist")
	require.Error(t, err)
}

func TestAssetTag_Stable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch"), 0o644))

	first, err := AssetTag(dir)
	require.NoError(t, err)
	second, err := AssetTag(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Content changes must change the tag.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main // v2"), 0o644))
	third, err := AssetTag(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestAssetTag_EmptyContext(t *testing.T) {
	_, err := AssetTag(t.TempDir())
	require.Error(t, err)
}
