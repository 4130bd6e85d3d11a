package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/repository"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/sanitize"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/validation"
)

// NotFoundMessage is shown to clients for ErrNotFound.
const NotFoundMessage = "Bookmark doesn't exist"

var (
	ErrNotFound = errors.New("bookmark not found")
)

// Bookmarks runs every operation through validation on the way in and
// sanitization on the way out. Returned bookmarks are always sanitized.
type Bookmarks struct {
	store  repository.Store
	logger *zap.SugaredLogger
}

func NewBookmarks(store repository.Store, l *zap.SugaredLogger) *Bookmarks {
	return &Bookmarks{
		store:  store,
		logger: l,
	}
}

func (s *Bookmarks) List(ctx context.Context) ([]models.Bookmark, error) {
	bookmarks, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}
	return sanitize.Bookmarks(bookmarks), nil
}

func (s *Bookmarks) Get(ctx context.Context, id uint64) (models.Bookmark, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Bookmark{}, errors.Wrap(err, "get bookmark")
	}
	if b == nil {
		s.logger.Errorw("bookmark not found", "id", id)
		return models.Bookmark{}, ErrNotFound
	}
	return sanitize.Bookmark(*b), nil
}

func (s *Bookmarks) Create(ctx context.Context, payload map[string]interface{}) (models.Bookmark, error) {
	nb, err := validation.ValidateNewBookmark(payload)
	if err != nil {
		s.logger.Errorw("invalid bookmark", "error", err)
		return models.Bookmark{}, err
	}

	b, err := s.store.Insert(ctx, nb)
	if err != nil {
		return models.Bookmark{}, errors.Wrap(err, "insert bookmark")
	}

	s.logger.Infow("bookmark created", "id", b.ID)
	return sanitize.Bookmark(b), nil
}

func (s *Bookmarks) Update(ctx context.Context, id uint64, payload map[string]interface{}) error {
	patch, err := validation.ValidateBookmarkPatch(payload)
	if err != nil {
		s.logger.Errorw("invalid bookmark update", "id", id, "error", err)
		return err
	}

	n, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return errors.Wrap(err, "update bookmark")
	}
	if n == 0 {
		s.logger.Errorw("bookmark not found", "id", id)
		return ErrNotFound
	}

	s.logger.Infow("bookmark updated", "id", id)
	return nil
}

func (s *Bookmarks) Delete(ctx context.Context, id uint64) error {
	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete bookmark")
	}
	if n == 0 {
		s.logger.Errorw("bookmark not found", "id", id)
		return ErrNotFound
	}

	s.logger.Infow("bookmark deleted", "id", id)
	return nil
}
