package catalog

import "errors"

// Item is one clothing item row joined with its collection name.
type Item struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Size           string  `json:"size"`
	Color          string  `json:"color"`
	Price          float64 `json:"price"`
	CollectionID   int64   `json:"collection_id,omitempty"`
	CollectionName string  `json:"collection_name,omitempty"`
}

// Collection groups items under a designer and season.
type Collection struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Year         int    `json:"year"`
	DesignerID   int64  `json:"designer_id,omitempty"`
	DesignerName string `json:"designer_name,omitempty"`
}

// Designer is one designer row.
type Designer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Style string `json:"style"`
}

// Store is one retail store row.
type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemInput carries fields for creating an item.
type ItemInput struct {
	Name         string
	Size         string
	Color        string
	Price        float64
	CollectionID int64
}

// ItemUpdate carries the fields the legacy UI allowed to change.
type ItemUpdate struct {
	Name  string
	Price float64
}

// CollectionInput carries fields for creating a collection.
type CollectionInput struct {
	Name       string
	Season     string
	Year       int
	DesignerID int64
}

// DesignerInput carries fields for creating a designer.
type DesignerInput struct {
	Name  string
	Email string
	Phone string
	Style string
}

var (
	// ErrNameRequired indicates a missing display name.
	ErrNameRequired = errors.New("catalog: name is required")
	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = errors.New("catalog: price must be >= 0")
	// ErrDesignerRequired indicates a collection without a designer.
	ErrDesignerRequired = errors.New("catalog: designer is required")
)
