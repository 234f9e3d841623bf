package agents

import (
	"context"

	"consilium/internal/project"
)

// Agent is one specialist analyst. Analyze returns the typed payload on
// success; an error wrapping errors.ErrMissingProjectData marks the run as
// skipped rather than failed.
type Agent interface {
	Role() Role
	Analyze(ctx context.Context, in *project.Input) (Payload, error)
}
