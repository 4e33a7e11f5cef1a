package dto

// Transfer objects decouple the wire shape from the persisted shape.
// ProductDTO carries the category by identifier only, never the nested
// Category record, so responses cannot serialize circular references.

type ProductDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Price      float64 `json:"price" validate:"gte=0"`
	CategoryID int64   `json:"categoryId" validate:"required,gt=0"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}
