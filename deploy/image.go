package deploy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsProduction reports whether a stack name selects the production rollout
// path. Any stack whose name contains "prod" (case-insensitive) is production.
func IsProduction(stackName string) bool {
	return strings.Contains(strings.ToLower(stackName), "prod")
}

// ResolveRuntimeImage returns the container image a stack should run.
//
// Production stacks always resolve the bootstrap image; the pipeline replaces
// it with a real application image on the first promotion. Every other stack
// resolves a locally built image in the runtime ECR repository, tagged with a
// digest of the build context. A missing build context is a synthesis error,
// not a fallback.
func ResolveRuntimeImage(stackName, contextDir string) (string, error) {
	if IsProduction(stackName) {
		return BootstrapImage, nil
	}

	tag, err := AssetTag(contextDir)
	if err != nil {
		return "", fmt.Errorf("resolving image for stack %q: %w", stackName, err)
	}

	return RuntimeRepositoryName + ":" + tag, nil
}

// AssetTag derives a stable image tag from the contents of a build context
// directory. Identical contexts produce identical tags, so unchanged builds
// map to the same image.
func AssetTag(contextDir string) (string, error) {
	info, err := os.Stat(contextDir)
	if err != nil {
		return "", fmt.Errorf("build context %s: %w", contextDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("build context %s: not a directory", contextDir)
	}

	var files []string
	err = filepath.WalkDir(contextDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != contextDir {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("build context %s: %w", contextDir, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("build context %s: no files", contextDir)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		rel, err := filepath.Rel(contextDir, path)
		if err != nil {
			return "", err
		}
		// Hash the relative path so renames change the tag.
		io.WriteString(h, filepath.ToSlash(rel))
		h.Write([]byte{0})

		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil))[:12], nil
}
