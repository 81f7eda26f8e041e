package plans

// Plan IDs double as tier levels: a higher ID is a higher tier.
// Selecting a plan with ID <= the user's current plan ID is rejected.
type Plan struct {
	ID            uint `gorm:"primaryKey"`
	Name          string
	PriceVND      float64 `gorm:"column:price_vnd"`
	Description   string
	Features      string `gorm:"type:text"` // newline-separated marketing bullets
	MaxBusinesses int    `gorm:"column:max_businesses"` // 0 = unlimited
}
