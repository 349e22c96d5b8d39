package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/nonbon/internal/models"
)

var (
	ErrInvalidTitle        = errors.New("invalid title")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrActiveLimitExceeded = errors.New("active limit exceeded")
	ErrItemNotFound        = errors.New("focus item not found")
	ErrEmptyBacklog        = errors.New("backlog is empty")
)

// FocusService owns every focus item of the process and is the single
// place where the active cap is enforced.
type FocusService interface {
	// ListAll returns all items in insertion order.
	ListAll(ctx context.Context) []models.FocusItem

	// ListActive returns the items with status Active in insertion order.
	ListActive(ctx context.Context) []models.FocusItem

	// ListByStatus returns the items with the given status in insertion order.
	ListByStatus(ctx context.Context, status models.Status) []models.FocusItem

	// GetItem returns the item with the given id or ErrItemNotFound.
	GetItem(ctx context.Context, id int64) (models.FocusItem, error)

	// PickRandomBacklog returns a uniformly chosen Backlog item.
	//
	// It returns ErrEmptyBacklog if there are no Backlog items.
	PickRandomBacklog(ctx context.Context) (models.FocusItem, error)

	// CreateItem validates the params and stores a new item.
	//
	// An empty status defaults to Backlog. It returns ErrInvalidTitle,
	// ErrInvalidStatus or ErrActiveLimitExceeded when the item can't be
	// created. The id counter only advances on success.
	CreateItem(ctx context.Context, params CreateItemParams) (models.FocusItem, error)

	// UpdateStatus sets the status of the item with the given id.
	//
	// It returns ErrItemNotFound, ErrInvalidStatus or, when the item
	// would become Active with the cap already reached,
	// ErrActiveLimitExceeded. An Active item may be set to Active again.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Stats counts the items per status. Every status has an entry.
	Stats(ctx context.Context) map[models.Status]int
}

type CreateItemParams struct {
	Title  string
	Area   string
	Status string
}
