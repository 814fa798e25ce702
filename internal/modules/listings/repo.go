package listings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Listing, error) {
	var items []Listing
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID returns (nil, nil) when the listing does not exist.
func (r *Repo) FindByID(ctx context.Context, id string) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repo) Update(ctx context.Context, id string, fields map[string]any) (*Listing, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Listing{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Reserve flips is_available from true to false with a single compare-and-set
// UPDATE. It returns false when the listing was already unavailable (or gone),
// which makes it the serialization point for concurrent booking commits.
func (r *Repo) Reserve(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ? AND is_available = ?", id, true).
		Updates(map[string]any{"is_available": false, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release is the compensating action for Reserve when a later commit step fails.
func (r *Repo) Release(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_available": true, "updated_at": time.Now()}).Error
}
