package summary

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
)

// Summary holds the admin dashboard aggregates over the admin's own listings.
type Summary struct {
	TotalListings      int64    `json:"total_listings"`
	TotalBookings      int64    `json:"total_bookings"`
	TotalRevenueMinor  int64    `json:"total_revenue_minor"`
	WeeklyRevenueMinor [7]int64 `json:"weekly_revenue_minor"` // Sun..Sat, current week
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ForAdmin(ctx context.Context, adminID string) (Summary, error) {
	var out Summary

	var listingIDs []string
	if err := s.db.WithContext(ctx).Model(&listings.Listing{}).
		Where("created_by = ?", adminID).
		Pluck("id", &listingIDs).Error; err != nil {
		return Summary{}, err
	}
	out.TotalListings = int64(len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}

	var confirmed []orders.Order
	if err := s.db.WithContext(ctx).
		Where("listing_id IN ? AND status = ?", listingIDs, orders.StatusConfirmed).
		Find(&confirmed).Error; err != nil {
		return Summary{}, err
	}

	now := time.Now()
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))

	out.TotalBookings = int64(len(confirmed))
	for _, o := range confirmed {
		out.TotalRevenueMinor += o.AmountMinor
		if !o.CreatedAt.Before(startOfWeek) {
			out.WeeklyRevenueMinor[int(o.CreatedAt.Weekday())] += o.AmountMinor
		}
	}

	return out, nil
}
