package runner

import (
	"fmt"
	"os"
	"strings"
)

// LoadBody reads the pull request description from the given file.
// A missing or empty file is a fatal error: publishing a pull request without
// a description is not supported.
func LoadBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read pull request body from %s: %w", path, err)
	}

	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", fmt.Errorf("pull request body file %s is empty", path)
	}
	return body, nil
}
