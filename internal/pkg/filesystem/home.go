// Package filesystem holds small path helpers shared by the adapters.
package filesystem

import "os"

// UserHomeDir resolves the home directory that anchors the ~/.arcgen tree.
// When the platform cannot report one, the current directory is used so the
// CLI still functions in minimal containers.
func UserHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}
