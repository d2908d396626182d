package dto

// CategoryResponse is a tree node in the catalog listing.
type CategoryResponse struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	SubCategories []CategoryResponse `json:"sub_categories"`
}
