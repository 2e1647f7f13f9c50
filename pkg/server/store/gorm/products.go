package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var _ store.ProductsStore = (*ProductsStore)(nil)

// ProductsStore implements store.ProductsStore using GORM
type ProductsStore struct {
	db *gorm.DB
}

// NewProductsStore creates a new ProductsStore
func NewProductsStore(db *gorm.DB) *ProductsStore {
	return &ProductsStore{db: db}
}

func (s *ProductsStore) ListProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	products := []model.Product{}
	err := s.db.WithContext(ctx).
		Where("belongs_to_id = ?", ownerID).
		Order("created_at").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductsStore) FetchProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, store.ErrProductNotFound
	}

	var product model.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND belongs_to_id = ?", id, ownerID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductsStore) CreateProduct(ctx context.Context, ownerID, name string) (*model.Product, error) {
	product := &model.Product{Name: name, BelongsToID: ownerID}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductsStore) UpdateProduct(ctx context.Context, ownerID, id, name string) (*model.Product, error) {
	product, err := s.FetchProduct(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND belongs_to_id = ?", id, ownerID).
		Update("name", name)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrProductNotFound
	}

	product.Name = name
	return product, nil
}

func (s *ProductsStore) DeleteProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	product, err := s.FetchProduct(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).
		Where("id = ? AND belongs_to_id = ?", id, ownerID).
		Delete(&model.Product{})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrProductNotFound
	}
	return product, nil
}
