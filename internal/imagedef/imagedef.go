// Package imagedef writes the image-definitions artifact consumed by
// CodePipeline ECS deploy actions.
package imagedef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Definition maps one container name to the image it should run. The ECS
// deploy action matches Name against the container in the service's task
// definition.
type Definition struct {
	Name     string `json:"name"`
	ImageUri string `json:"imageUri"`
}

// Write writes a single-container image-definitions file to path, creating
// parent directories as needed.
func Write(path, containerName, imageURI string) error {
	if containerName == "" {
		return fmt.Errorf("container name is empty")
	}
	if imageURI == "" {
		return fmt.Errorf("image URI is empty")
	}

	data, err := json.MarshalIndent([]Definition{{
		Name:     containerName,
		ImageUri: imageURI,
	}}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
