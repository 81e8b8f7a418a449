package audit

import "time"

// Entry describes one mutating action to be recorded.
type Entry struct {
	ActorID       int64
	ActorUsername string
	Action        string
	EntityType    string
	EntityID      string
	Detail        string
}

// Record is a persisted audit entry. Records are append-only: nothing in
// this package, or anywhere else, updates or deletes one.
type Record struct {
	ID            int64     `json:"id"`
	ActorID       int64     `json:"actor_id"`
	ActorUsername string    `json:"actor_username"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}

// Filters narrows an audit listing.
type Filters struct {
	From       time.Time
	To         time.Time
	Actor      string
	Action     string
	EntityType string
	Page       int
	PageSize   int
}

// PagingInfo carries simple pagination metadata for listings.
type PagingInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	PrevPage int  `json:"prev_page,omitempty"`
	NextPage int  `json:"next_page,omitempty"`
}

// Result bundles one listing page.
type Result struct {
	Records []Record   `json:"records"`
	Paging  PagingInfo `json:"paging"`
}
