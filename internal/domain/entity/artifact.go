package entity

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	SkeletonSuffix        = "_skeleton"
	DefaultVideoExtension = ".mp4"
)

// VideoArtifact is a video file on the local filesystem.
type VideoArtifact struct {
	Path string
}

func NewVideoArtifact(path string) VideoArtifact {
	return VideoArtifact{Path: path}
}

// Exists reports whether the artifact is present on disk as a regular file.
func (a VideoArtifact) Exists() bool {
	return FileExists(a.Path)
}

// Skeleton returns the sibling artifact the pose extractor writes for a.
func (a VideoArtifact) Skeleton() VideoArtifact {
	return VideoArtifact{Path: SkeletonPath(a.Path)}
}

// SkeletonPath inserts the skeleton suffix before the extension of source,
// falling back to DefaultVideoExtension when source has none. Leading dots
// of the file name belong to the base name, so ".clip" has no extension.
func SkeletonPath(source string) string {
	ext := filepath.Ext(strings.TrimLeft(filepath.Base(source), "."))
	base := strings.TrimSuffix(source, ext)
	if ext == "" {
		ext = DefaultVideoExtension
	}
	return base + SkeletonSuffix + ext
}

func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
