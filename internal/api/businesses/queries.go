package businesses

import "gorm.io/gorm"

// preloadChildren loads the embedded images and products for DTO mapping.
func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Preload("Products")
}
