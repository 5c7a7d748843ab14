package domain

import (
	"strings"
	"time"
)

// Listing types and categories.
const (
	TypeSale = "sale"
	TypeRent = "rent"

	CategoryApartment  = "apartment"
	CategoryVilla      = "villa"
	CategoryLand       = "land"
	CategoryCommercial = "commercial"
)

// PropertyInput is everything a client may supply when listing a property.
type PropertyInput struct {
	TitleEn       string   `json:"titleEn"`
	TitleAr       string   `json:"titleAr"`
	DescriptionEn string   `json:"descriptionEn"`
	DescriptionAr string   `json:"descriptionAr"`
	Type          string   `json:"type"`     // sale|rent
	Category      string   `json:"category"` // apartment|villa|land|commercial
	Location      string   `json:"location"`
	Price         int64    `json:"price"` // AED
	Area          int64    `json:"area"`  // sqft
	ImageURL      string   `json:"imageUrl"`
	Features      []string `json:"features"` // nil marshals to null
	IsFeatured    bool     `json:"isFeatured"`
}

// Property is a stored listing: the input plus the two storage-assigned fields.
type Property struct {
	ID int64 `json:"id"`
	PropertyInput
	CreatedAt time.Time `json:"createdAt"`
}

// Clone copies the features slice so callers can't alias storage memory.
func (p Property) Clone() Property {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}

// PropertyFilter narrows a listing. Zero value matches everything.
type PropertyFilter struct {
	Q        string
	Type     string
	Category string
	Location string
	Featured *bool
}

func (f PropertyFilter) IsZero() bool {
	return f.Q == "" && f.Type == "" && f.Category == "" && f.Location == "" && f.Featured == nil
}

// Match mirrors the listings page search: English title and location are
// matched case-insensitively, the Arabic title by plain substring.
func (f PropertyFilter) Match(p Property) bool {
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(p.Location, f.Location) {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	if f.Q != "" {
		q := strings.ToLower(f.Q)
		if !strings.Contains(strings.ToLower(p.TitleEn), q) &&
			!strings.Contains(p.TitleAr, f.Q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	return true
}

// FilterProperties keeps the order of in.
func FilterProperties(in []Property, f PropertyFilter) []Property {
	if f.IsZero() {
		return in
	}
	out := make([]Property, 0, len(in))
	for _, p := range in {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
