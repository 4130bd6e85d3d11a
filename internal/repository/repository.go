package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
)

type Store interface {
	List(ctx context.Context) ([]models.Bookmark, error)
	// GetByID returns nil and no error when the bookmark does not exist.
	GetByID(ctx context.Context, id uint64) (*models.Bookmark, error)
	Insert(ctx context.Context, b models.NewBookmark) (models.Bookmark, error)
	Update(ctx context.Context, id uint64, patch models.BookmarkPatch) (int64, error)
	DeleteByID(ctx context.Context, id uint64) (int64, error)
}

// StorageError wraps any failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Cause() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

var columns = []string{"id", "title", "url", "description", "rating"}

type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (r *Gorm) List(ctx context.Context) ([]models.Bookmark, error) {
	sql, args, err := squirrel.
		Select(columns...).
		From("bookmarks").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, storageErr("list", errors.Wrap(err, "build sql"))
	}

	rows := make([]db.Bookmark, 0)
	res := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows)
	if res.Error != nil {
		return nil, storageErr("list", errors.Wrap(res.Error, "scan"))
	}

	bookmarks := make([]models.Bookmark, len(rows))
	for i := range rows {
		bookmarks[i] = rows[i].ToModel()
	}
	return bookmarks, nil
}

func (r *Gorm) GetByID(ctx context.Context, id uint64) (*models.Bookmark, error) {
	row := db.Bookmark{}
	res := r.db.WithContext(ctx).Select(columns).Where("id = ?", id).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, storageErr("get", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	b := row.ToModel()
	return &b, nil
}

func (r *Gorm) Insert(ctx context.Context, b models.NewBookmark) (models.Bookmark, error) {
	row := db.Bookmark{
		Title:       b.Title,
		URL:         b.URL,
		Description: b.Description,
		Rating:      b.Rating,
	}
	res := r.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return models.Bookmark{}, storageErr("insert", res.Error)
	}
	return row.ToModel(), nil
}

func (r *Gorm) Update(ctx context.Context, id uint64, patch models.BookmarkPatch) (int64, error) {
	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.URL != nil {
		fields["url"] = *patch.URL
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Rating != nil {
		fields["rating"] = *patch.Rating
	}
	if len(fields) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&db.Bookmark{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, storageErr("update", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *Gorm) DeleteByID(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&db.Bookmark{}, id)
	if res.Error != nil {
		return 0, storageErr("delete", res.Error)
	}
	return res.RowsAffected, nil
}
