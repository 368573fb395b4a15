package entity

import "github.com/google/uuid"

// PipelineRequest identifies one analysis run. The run ID only correlates
// logs, traces and events; requests are never deduplicated.
type PipelineRequest struct {
	RunID      uuid.UUID
	SourcePath string
}

func NewPipelineRequest(sourcePath string) PipelineRequest {
	return PipelineRequest{RunID: uuid.New(), SourcePath: sourcePath}
}
