package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
)

// ErrUpdateNotFound is returned when an update does not exist or belongs to
// a product the caller does not own.
var ErrUpdateNotFound = errors.New("update not found")

// UpdatePatch holds the fields of an update to change. Nil fields are left
// as they are.
type UpdatePatch struct {
	Title   *string
	Body    *string
	Status  *model.UpdateStatus
	Version *string
	Asset   *string
}

// Empty reports whether the patch changes nothing.
func (p UpdatePatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Status == nil && p.Version == nil && p.Asset == nil
}

// UpdatesStore abstracts update storage.
type UpdatesStore interface {
	// ListUpdates returns the updates of every product the owner has.
	ListUpdates(ctx context.Context, ownerID string) ([]model.Update, error)
	// ListProductUpdates returns one product's updates, newest first.
	// Returns ErrProductNotFound if the product is not the owner's.
	ListProductUpdates(ctx context.Context, ownerID, productID string) ([]model.Update, error)
	FetchUpdate(ctx context.Context, ownerID, id string) (*model.Update, error)
	// CreateUpdate stores u. Returns ErrProductNotFound if u.ProductID is not
	// one of the owner's products.
	CreateUpdate(ctx context.Context, ownerID string, u *model.Update) error
	PatchUpdate(ctx context.Context, ownerID, id string, patch UpdatePatch) (*model.Update, error)
	DeleteUpdate(ctx context.Context, ownerID, id string) (*model.Update, error)
}
