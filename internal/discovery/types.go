// pattern: Functional Core

package discovery

import "path/filepath"

// DefaultMarker identifies a git working tree.
const DefaultMarker = ".git"

// Project is a directory holding a version-control marker subdirectory.
type Project struct {
	Name   string // Final path segment, used as the display name
	Path   string // Path to the project directory
	Marker string // Marker directory name that identified it
}

// NewProject builds a Project for path, naming it by its basename.
func NewProject(path, marker string) Project {
	return Project{Name: filepath.Base(path), Path: path, Marker: marker}
}

// Paths returns the project paths in discovery order.
func Paths(projects []Project) []string {
	paths := make([]string, len(projects))
	for i, p := range projects {
		paths[i] = p.Path
	}
	return paths
}
