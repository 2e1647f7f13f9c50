package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
)

// ErrProductNotFound is returned when a product does not exist or is not
// owned by the caller.
var ErrProductNotFound = errors.New("product not found")

// ProductsStore abstracts product storage. ownerID is always the
// authenticated user's ID.
type ProductsStore interface {
	ListProducts(ctx context.Context, ownerID string) ([]model.Product, error)
	FetchProduct(ctx context.Context, ownerID, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, ownerID, name string) (*model.Product, error)
	// UpdateProduct renames a product.
	UpdateProduct(ctx context.Context, ownerID, id, name string) (*model.Product, error)
	// DeleteProduct removes a product and returns the removed row.
	DeleteProduct(ctx context.Context, ownerID, id string) (*model.Product, error)
}
