package listings

import (
	"time"

	"gorm.io/datatypes"
)

// GeoPoint is a GeoJSON point, stored as a JSON column.
type GeoPoint struct {
	Type        string    `json:"type"`        // always "Point"
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

type Image struct {
	URL string `json:"url"`
	Key string `json:"key"` // storage key, used on delete
}

type Listing struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null"`
	// Nightly price in minor units (paise).
	PriceMinor  int64          `gorm:"column:price_minor;not null"`
	Location    string         `gorm:"type:varchar(200);not null"`
	Country     string         `gorm:"type:varchar(100);not null"`
	IsAvailable bool           `gorm:"not null;default:true"`
	Geometry    datatypes.JSON `gorm:"type:json"`
	Images      datatypes.JSON `gorm:"type:json"`
	CreatedBy   string         `gorm:"type:char(36);not null;index:ix_listings_created_by"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (Listing) TableName() string { return "listings" }

type Review struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	ListingID string    `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_listing_user,priority:1"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_listing_user,priority:2"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Review) TableName() string { return "reviews" }
