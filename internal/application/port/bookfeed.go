package port

import "context"

// BookFeed is one venue's ingest adapter. Run blocks until ctx is
// done, publishing every decoded snapshot into the venue's slot and
// releasing the ingest gate. Reconnection policy is the feed's own
// concern; the core tolerates arbitrary silence from any venue.
type BookFeed interface {
	Name() string
	Run(ctx context.Context) error
}
