package models

// ClothingItem is a single garment in the closet.
type ClothingItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"` // data URL, media key or http(s) URL
	Category Category `json:"category"`
}

// NewItem is the payload of the add-item form; the ID is assigned by the closet.
type NewItem struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Category Category `json:"category"`
}
