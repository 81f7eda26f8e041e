package businesses

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"directory-app/internal/domain/catalog"
)

func toBusinessDTO(b catalog.Business) BusinessDTO {
	images := make([]string, 0, len(b.Images))
	sort.Slice(b.Images, func(i, j int) bool { return b.Images[i].SortIndex < b.Images[j].SortIndex })
	for _, img := range b.Images {
		images = append(images, img.URL)
	}

	products := make([]ProductDTO, 0, len(b.Products))
	for _, p := range b.Products {
		products = append(products, ProductDTO{
			ID:          p.ID,
			BusinessID:  p.BusinessID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			IsAvailable: p.IsAvailable,
		})
	}

	return BusinessDTO{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Category:    b.Category,
		Description: b.Description,
		Address:     b.Address,
		Location:    LocationDTO{Latitude: b.Latitude, Longitude: b.Longitude},
		Phone:       b.Phone,
		OpeningHours: OpeningHoursDTO{
			Open:  b.OpenTime,
			Close: b.CloseTime,
			Days:  parseDays(b.OpenDays),
		},
		IsOpen:    b.IsOpen,
		Images:    images,
		ViewCount: b.ViewCount,
		Rating:    b.Rating,
		Products:  products,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBusinessDTOs(list []catalog.Business) []BusinessDTO {
	out := make([]BusinessDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toBusinessDTO(b))
	}
	return out
}

// Day-of-week sets are stored as a comma-separated string ("0,1,5").
func parseDays(s string) []int {
	if s == "" {
		return []int{}
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		if d, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && d >= 0 && d <= 6 {
			days = append(days, d)
		}
	}
	return days
}

func encodeDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			parts = append(parts, strconv.Itoa(d))
		}
	}
	return strings.Join(parts, ",")
}
