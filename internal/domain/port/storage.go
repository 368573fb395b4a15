package port

import "context"

// ArtifactArchive copies local video artifacts to object storage.
type ArtifactArchive interface {
	ArchiveVideo(ctx context.Context, objectKey string, localPath string) error
}
