package dto

import (
	"github.com/shopspring/decimal"

	"frontdesk/internal/domains/event/classifier"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateCollectionRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

type CreateItemRequest struct {
	Name         string          `json:"name"          validate:"required,max=100"`
	CollectionID string          `json:"collection_id" validate:"required,uuid"`
	Price        decimal.Decimal `json:"price"         validate:"required"`
	InitialStock int             `json:"initial_stock" validate:"gte=0"`
}

type UpdateEntityRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	CategoryID   string          `json:"category_id,omitempty"`
	CollectionID string          `json:"collection_id,omitempty"`
	Price        decimal.Decimal `json:"price,omitempty"`
}

type AdjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"required"`
	Note     string `json:"note"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

// CategoryResponse is the current version of one category chain.
type CategoryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

func (r *CategoryResponse) FromRecord(rec classifier.Category) {
	r.ID = rec.Source().Root()
	r.Name = rec.Name
	r.Version = rec.Source().VersionNo
}

type CollectionResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Version    int    `json:"version"`
}

func (r *CollectionResponse) FromRecord(rec classifier.Collection) {
	r.ID = rec.Source().Root()
	r.Name = rec.Name
	r.CategoryID = rec.CategoryID
	r.Version = rec.Source().VersionNo
}

type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CollectionID string          `json:"collection_id"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Version      int             `json:"version"`
}

func (r *ItemResponse) FromRecord(rec classifier.Item, stock int) {
	r.ID = rec.Source().Root()
	r.Name = rec.Name
	r.CollectionID = rec.CollectionID
	r.Price = rec.Price
	r.Stock = stock
	r.Version = rec.Source().VersionNo
}
