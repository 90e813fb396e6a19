package queries

import (
	"context"
	"time"

	"conference-seats/internal/pkg/errs"
	"conference-seats/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

var ErrConferenceNotFound = errs.ErrConferenceNotFound

// Read model (DTO for read side)
type ConferenceView struct {
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	LastUpdate time.Time `json:"last_update"`
}

type ConferenceQueries interface {
	GetConference(ctx context.Context, slug string) (*ConferenceView, error)
}

type conferenceQueriesImpl struct {
	repo shared.ProjectionRepository
}

func NewConferenceQueries(repo shared.ProjectionRepository) ConferenceQueries {
	return &conferenceQueriesImpl{
		repo: repo,
	}
}

func (q *conferenceQueriesImpl) GetConference(ctx context.Context, slug string) (*ConferenceView, error) {
	row, err := q.repo.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errs.ErrConferenceNotFound
	}

	var view ConferenceView
	if err := copier.Copy(&view, row); err != nil {
		return nil, errs.Wrap(err, "failed to map projection to view")
	}
	return &view, nil
}
