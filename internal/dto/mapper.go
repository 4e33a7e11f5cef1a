package dto

import (
	"time"

	"github.com/nexcat/catalog/internal/domain"
)

// Hand-written field-by-field conversions. Adding a field to an entity
// or DTO must be reflected here; there is no reflective copying.

func ProductToDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
	}
}

func ProductsToDTO(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, ProductToDTO(&products[i]))
	}
	return out
}

// NewProduct builds a transient entity from a create payload. The
// identifier is left unset for the store to generate.
func NewProduct(d ProductDTO) domain.Product {
	now := time.Now()
	return domain.Product{
		Name:       d.Name,
		Price:      d.Price,
		CategoryID: d.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ApplyProduct merges a replace payload onto a loaded entity. Exactly
// the DTO-carried fields are overwritten; identifier and CreatedAt are
// preserved.
func ApplyProduct(d ProductDTO, p *domain.Product) {
	p.Name = d.Name
	p.Price = d.Price
	p.CategoryID = d.CategoryID
	p.UpdatedAt = time.Now()
}

func CategoryToDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:   c.ID,
		Name: c.Name,
	}
}

func CategoriesToDTO(categories []domain.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, CategoryToDTO(&categories[i]))
	}
	return out
}

func NewCategory(d CategoryDTO) domain.Category {
	now := time.Now()
	return domain.Category{
		Name:      d.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ApplyCategory(d CategoryDTO, c *domain.Category) {
	c.Name = d.Name
	c.UpdatedAt = time.Now()
}
