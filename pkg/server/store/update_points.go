package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
)

// ErrUpdatePointNotFound is returned when an update point does not exist or
// is not reachable from the caller's products.
var ErrUpdatePointNotFound = errors.New("update point not found")

// UpdatePointPatch holds the fields of an update point to change.
type UpdatePointPatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p UpdatePointPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// UpdatePointsStore abstracts update point storage. Ownership is resolved
// through update, then product, then owner.
type UpdatePointsStore interface {
	ListUpdatePoints(ctx context.Context, ownerID string) ([]model.UpdatePoint, error)
	FetchUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error)
	// CreateUpdatePoint returns ErrUpdateNotFound if p.UpdateID is not
	// reachable from the owner's products.
	CreateUpdatePoint(ctx context.Context, ownerID string, p *model.UpdatePoint) error
	PatchUpdatePoint(ctx context.Context, ownerID, id string, patch UpdatePointPatch) (*model.UpdatePoint, error)
	DeleteUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error)
}
