package listings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListByListing(ctx context.Context, listingID string) ([]Review, error) {
	var items []Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ReviewRepo) FindByListingAndUser(ctx context.Context, listingID, userID string) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		First(&rv, "listing_id = ? AND user_id = ?", listingID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Upsert creates the user's review for the listing or overwrites the existing
// one (one review per user per listing).
func (r *ReviewRepo) Upsert(ctx context.Context, listingID, userID string, rating int, comment string) (*Review, error) {
	existing, err := r.FindByListingAndUser(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		err := r.db.WithContext(ctx).Model(&Review{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{"rating": rating, "comment": comment, "updated_at": now}).Error
		if err != nil {
			return nil, err
		}
		existing.Rating = rating
		existing.Comment = comment
		existing.UpdatedAt = now
		return existing, nil
	}

	rv := &Review{
		ID:        uuid.NewString(),
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepo) Update(ctx context.Context, listingID, userID string, rating *int, comment *string) (*Review, error) {
	rv, err := r.FindByListingAndUser(ctx, listingID, userID)
	if err != nil || rv == nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if rating != nil {
		updates["rating"] = *rating
		rv.Rating = *rating
	}
	if comment != nil {
		updates["comment"] = *comment
		rv.Comment = *comment
	}
	if err := r.db.WithContext(ctx).Model(&Review{}).Where("id = ?", rv.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, listingID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Delete(&Review{})
	return res.RowsAffected > 0, res.Error
}
