package dto

type MenuItemResponse struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Size        *string `json:"size"`
	Price       int     `json:"price"`
	Available   bool    `json:"available"`
}
