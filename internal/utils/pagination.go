package utils

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// List endpoints page by opaque cursor: the encoded primary key of the
// last row on the previous page. Ordering is primary key descending
// (charges use a documented compound key). hasMore is detected by
// fetching limit+1 rows; offsets are never accepted.

// EncodeCursor turns a row id into an opaque cursor string.
func EncodeCursor(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// DecodeCursor parses an opaque cursor back into a row id. An empty
// cursor means "first page" and returns nil.
func DecodeCursor(cursor string) (*uuid.UUID, error) {
	if cursor == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	return &id, nil
}

// PageMeta is the pagination block of the response envelope.
type PageMeta struct {
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// NewPageMeta builds meta from a page fetched with the limit+1 trick:
// rows is the page length after trimming, lastID the id of its last row.
func NewPageMeta(hasMore bool, lastID *uuid.UUID) *PageMeta {
	m := &PageMeta{HasMore: hasMore}
	if hasMore && lastID != nil {
		c := EncodeCursor(*lastID)
		m.NextCursor = &c
	}
	return m
}
