package ports

import "context"

// FollowUpRequest asks for a drafted message after an interest declaration.
type FollowUpRequest struct {
	WorkID     string
	WorkerID   string
	Interested bool
}

// FollowUpProcessor drafts and records a single follow-up message.
type FollowUpProcessor interface {
	ProcessFollowUp(ctx context.Context, req FollowUpRequest) error
}

// FollowUpQueue accepts follow-up requests without blocking the caller on
// text generation.
type FollowUpQueue interface {
	Enqueue(req FollowUpRequest)
}
