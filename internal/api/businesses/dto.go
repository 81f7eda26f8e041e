package businesses

// JSON shapes match what the mobile client already consumes: camelCase keys,
// nested location and openingHours objects, images as a flat URL list.

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OpeningHoursDTO struct {
	Open  string `json:"open"`  // "HH:MM"
	Close string `json:"close"` // "HH:MM"
	Days  []int  `json:"days"`  // 0-6, where 0 is Sunday
}

type ProductDTO struct {
	ID          uint    `json:"id"`
	BusinessID  uint    `json:"businessId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

type BusinessDTO struct {
	ID           uint            `json:"id"`
	OwnerID      uint            `json:"ownerId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Address      string          `json:"address"`
	Location     LocationDTO     `json:"location"`
	Phone        string          `json:"phone,omitempty"`
	OpeningHours OpeningHoursDTO `json:"openingHours"`
	IsOpen       bool            `json:"isOpen"`
	Images       []string        `json:"images"`
	ViewCount    int64           `json:"viewCount"`
	Rating       float64         `json:"rating"`
	Products     []ProductDTO    `json:"products"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

/* ---------- requests ---------- */

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Image       *string  `json:"image"`
	IsAvailable *bool    `json:"isAvailable"`
}

type OpeningHoursInput struct {
	Open  string `json:"open"`
	Close string `json:"close"`
	Days  []int  `json:"days"`
}

type CreateBusinessRequest struct {
	Name         string             `json:"name" binding:"required"`
	Category     string             `json:"category" binding:"required"`
	Description  string             `json:"description"`
	Address      string             `json:"address" binding:"required"`
	Location     *LocationDTO       `json:"location"`
	Phone        string             `json:"phone"`
	OpeningHours *OpeningHoursInput `json:"openingHours"`
	IsOpen       *bool              `json:"isOpen"`
	Images       []string           `json:"images"`
	Products     []ProductInput     `json:"products"`
}

type UpdateBusinessRequest struct {
	Name         *string            `json:"name"`
	Category     *string            `json:"category"`
	Description  *string            `json:"description"`
	Address      *string            `json:"address"`
	Location     *LocationDTO       `json:"location"`
	Phone        *string            `json:"phone"`
	OpeningHours *OpeningHoursInput `json:"openingHours"`
	IsOpen       *bool              `json:"isOpen"`
	Images       []string           `json:"images"`
	Products     []ProductInput     `json:"products"`
}

type SubmitRatingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type RatingDTO struct {
	UserID    uint   `json:"userId"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"createdAt"`
}
