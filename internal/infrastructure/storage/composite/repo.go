package composite

import (
	"context"

	"bookarb/internal/application/port"
	"bookarb/internal/domain/model"
)

// Repo fans summary writes out over several repositories. The first
// error is reported; every repository still sees every row.
type Repo struct {
	repos []port.SummaryRepository
}

func New(repos ...port.SummaryRepository) *Repo {
	out := make([]port.SummaryRepository, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

func (r *Repo) InsertSummary(ctx context.Context, s *model.BookSummary) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.InsertSummary(ctx, s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) Close() error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ port.SummaryRepository = (*Repo)(nil)
