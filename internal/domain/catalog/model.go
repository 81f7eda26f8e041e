package catalog

import "time"

// Business is owned by exactly one user. Products and images are embedded
// children that round-trip through create/update/fetch. Last write wins:
// there is no version field and no conflict detection.
type Business struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Category    string `gorm:"type:varchar(20);index;not null"`
	Description string
	Address     string `gorm:"not null"`
	Latitude    float64
	Longitude   float64
	Phone       string

	OpenTime  string `gorm:"type:varchar(5)"`  // "HH:MM"
	CloseTime string `gorm:"type:varchar(5)"`  // "HH:MM"
	OpenDays  string `gorm:"type:varchar(20)"` // comma-separated day-of-week set, 0=Sunday
	IsOpen    bool

	ViewCount int64   `gorm:"not null;default:0"`
	Rating    float64 `gorm:"not null;default:0"`

	Images   []BusinessImage `gorm:"constraint:OnDelete:CASCADE"`
	Products []Product       `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type BusinessImage struct {
	ID         uint   `gorm:"primaryKey"`
	BusinessID uint   `gorm:"index;not null"`
	URL        string `gorm:"not null"`
	SortIndex  int    `gorm:"column:sort_index"`
}

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	BusinessID  uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Image       *string
	IsAvailable bool `gorm:"not null;default:true"`
}

// Rating is one user's current score for one business. Re-rating replaces
// the row, so the business average always reflects each user's latest value.
type Rating struct {
	ID         uint `gorm:"primaryKey"`
	BusinessID uint `gorm:"not null;uniqueIndex:idx_ratings_business_user"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_ratings_business_user"`
	Stars      int  `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
