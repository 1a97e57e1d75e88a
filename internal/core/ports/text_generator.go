package ports

import (
	"context"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// TextGenerator drafts free text from domain data. Implementations never
// return an error: failures degrade to a fixed fallback string.
type TextGenerator interface {
	// Describe drafts a short duty description for a work item.
	Describe(ctx context.Context, title, place string, slot domain.TimeSlot) string
	// FollowUp drafts the message sent after a worker declares interest.
	// An empty result means no message should be sent.
	FollowUp(ctx context.Context, workTitle, workerName string, interested bool) string
	// Insight drafts a one-sentence remark on today's numbers.
	Insight(ctx context.Context, activeWork, interested, notInterested int) string
}
