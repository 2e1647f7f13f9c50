package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var _ store.UpdatesStore = (*UpdatesStore)(nil)

const joinUpdateProducts = "JOIN products ON products.id = updates.product_id"

// UpdatesStore implements store.UpdatesStore using GORM
type UpdatesStore struct {
	db *gorm.DB
}

// NewUpdatesStore creates a new UpdatesStore
func NewUpdatesStore(db *gorm.DB) *UpdatesStore {
	return &UpdatesStore{db: db}
}

// owned scopes a query on updates to the owner's products.
func (s *UpdatesStore) owned(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Select("updates.*").
		Joins(joinUpdateProducts).
		Where("products.belongs_to_id = ?", ownerID)
}

func (s *UpdatesStore) ListUpdates(ctx context.Context, ownerID string) ([]model.Update, error) {
	updates := []model.Update{}
	if err := s.owned(ctx, ownerID).Order("updates.created_at").Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (s *UpdatesStore) ListProductUpdates(ctx context.Context, ownerID, productID string) ([]model.Update, error) {
	if err := s.ownsProduct(ctx, ownerID, productID); err != nil {
		return nil, err
	}

	updates := []model.Update{}
	err := s.owned(ctx, ownerID).
		Where("updates.product_id = ?", productID).
		Order("updates.created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func (s *UpdatesStore) ownsProduct(ctx context.Context, ownerID, productID string) error {
	if !validID(productID) {
		return store.ErrProductNotFound
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND belongs_to_id = ?", productID, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

func (s *UpdatesStore) FetchUpdate(ctx context.Context, ownerID, id string) (*model.Update, error) {
	if !validID(id) {
		return nil, store.ErrUpdateNotFound
	}

	var update model.Update
	err := s.owned(ctx, ownerID).Where("updates.id = ?", id).First(&update).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

func (s *UpdatesStore) CreateUpdate(ctx context.Context, ownerID string, u *model.Update) error {
	if err := s.ownsProduct(ctx, ownerID, u.ProductID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *UpdatesStore) PatchUpdate(ctx context.Context, ownerID, id string, patch store.UpdatePatch) (*model.Update, error) {
	update, err := s.FetchUpdate(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return update, nil
	}

	changes := map[string]interface{}{}
	if patch.Title != nil {
		update.Title = *patch.Title
		changes["title"] = update.Title
	}
	if patch.Body != nil {
		update.Body = *patch.Body
		changes["body"] = update.Body
	}
	if patch.Status != nil {
		update.Status = *patch.Status
		changes["status"] = update.Status
	}
	if patch.Version != nil {
		update.Version = patch.Version
		changes["version"] = *patch.Version
	}
	if patch.Asset != nil {
		update.Asset = patch.Asset
		changes["asset"] = *patch.Asset
	}

	if err := s.db.WithContext(ctx).Model(update).Updates(changes).Error; err != nil {
		return nil, err
	}
	return update, nil
}

func (s *UpdatesStore) DeleteUpdate(ctx context.Context, ownerID, id string) (*model.Update, error) {
	update, err := s.FetchUpdate(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(update).Error; err != nil {
		return nil, err
	}
	return update, nil
}
