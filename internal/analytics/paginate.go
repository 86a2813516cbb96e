package analytics

import (
	"errors"
	"fmt"

	"github.com/kajoty/playlist-insights/internal/domain"
)

var (
	// ErrInvalidPageSize rejects a non-positive page size.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrInvalidPage rejects a page number outside [1, totalPages]. The
	// helper fails rather than clamping so the contract stays explicit.
	ErrInvalidPage = errors.New("page number out of range")
)

// DefaultPageSize matches the dashboard table's page length.
const DefaultPageSize = 500

// Page is one fixed-size window over a filtered collection.
type Page struct {
	Events      []domain.Event `json:"events"`
	Number      int            `json:"number"`
	TotalPages  int            `json:"total_pages"`
	TotalEvents int            `json:"total_events"`
}

// Paginate slices the collection into pageSize windows and returns window
// `page`, counting from 1. An empty collection still has exactly one (empty)
// page, never zero.
func Paginate(events []domain.Event, pageSize, page int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	totalPages := (len(events) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return Page{}, fmt.Errorf("%w: page %d of %d", ErrInvalidPage, page, totalPages)
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}
	return Page{
		Events:      events[start:end],
		Number:      page,
		TotalPages:  totalPages,
		TotalEvents: len(events),
	}, nil
}
