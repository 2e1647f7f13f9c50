// Package store defines the storage interfaces used by the HTTP endpoints.
//
// Endpoints depend on these interfaces rather than on gorm so handlers can be
// tested with mocks. The gorm subpackage holds the postgres implementations.
//
// Every read and write of products, updates and update points takes the
// authenticated owner's ID. A row owned by someone else is reported exactly
// like a row that does not exist.
//
// # Available Stores
//
//   - UsersStore: account creation and lookup
//   - ProductsStore: products owned by a user
//   - UpdatesStore: updates on the owner's products
//   - UpdatePointsStore: line items on the owner's updates
//   - HealthStore: database connectivity
//
// # Usage
//
//	product, err := products.FetchProduct(ctx, id.ID, productID)
//	if errors.Is(err, store.ErrProductNotFound) {
//	    // 404
//	}
package store
