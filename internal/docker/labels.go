package docker

import (
	"fmt"

	"github.com/google/uuid"
)

// Label keys used for young-ng containers
const (
	LabelProject       = "young-ng.project"
	LabelRunID         = "young-ng.run_id"
	LabelWorkspacePath = "young-ng.workspace.path"
	LabelCommand       = "young-ng.command"
)

// BuildLabels creates the label set for a container started by one scaffold run.
// command is optional.
func BuildLabels(runID, workspacePath, command string) map[string]string {
	labels := map[string]string{
		LabelProject:       "true",
		LabelRunID:         runID,
		LabelWorkspacePath: workspacePath,
	}

	if command != "" {
		labels[LabelCommand] = command
	}

	return labels
}

// GenerateRunID creates a new UUID for a scaffold run.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContainerName returns the name of the seq-th container of a run.
// The run ID is shortened to its first 8 characters.
func ContainerName(runID string, seq int) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("young-ng-%s-%d", short, seq)
}
