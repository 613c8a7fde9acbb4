package port

import (
	"context"

	"bookarb/internal/domain/model"
)

// SummaryRepository persists one book-summary row per detector tick.
type SummaryRepository interface {
	InsertSummary(ctx context.Context, s *model.BookSummary) error
	Close() error
}

// OpportunityPublisher fans detected opportunities out to an external
// consumer (e.g. a redis stream). Optional; the pipeline works with a
// nil publisher.
type OpportunityPublisher interface {
	PublishOpportunity(ctx context.Context, o *model.Opportunity) error
}
