package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var _ store.UpdatePointsStore = (*UpdatePointsStore)(nil)

// UpdatePointsStore implements store.UpdatePointsStore using GORM
type UpdatePointsStore struct {
	db *gorm.DB
}

// NewUpdatePointsStore creates a new UpdatePointsStore
func NewUpdatePointsStore(db *gorm.DB) *UpdatePointsStore {
	return &UpdatePointsStore{db: db}
}

func (s *UpdatePointsStore) owned(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Select("update_points.*").
		Joins("JOIN updates ON updates.id = update_points.update_id").
		Joins(joinUpdateProducts).
		Where("products.belongs_to_id = ?", ownerID)
}

func (s *UpdatePointsStore) ListUpdatePoints(ctx context.Context, ownerID string) ([]model.UpdatePoint, error) {
	points := []model.UpdatePoint{}
	if err := s.owned(ctx, ownerID).Order("update_points.created_at").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (s *UpdatePointsStore) FetchUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error) {
	if !validID(id) {
		return nil, store.ErrUpdatePointNotFound
	}

	var point model.UpdatePoint
	err := s.owned(ctx, ownerID).Where("update_points.id = ?", id).First(&point).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUpdatePointNotFound
		}
		return nil, err
	}
	return &point, nil
}

func (s *UpdatePointsStore) CreateUpdatePoint(ctx context.Context, ownerID string, p *model.UpdatePoint) error {
	if !validID(p.UpdateID) {
		return store.ErrUpdateNotFound
	}

	db := s.db.WithContext(ctx)

	var count int64
	err := db.Model(&model.Update{}).
		Joins(joinUpdateProducts).
		Where("updates.id = ? AND products.belongs_to_id = ?", p.UpdateID, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return store.ErrUpdateNotFound
	}

	return db.Create(p).Error
}

func (s *UpdatePointsStore) PatchUpdatePoint(ctx context.Context, ownerID, id string, patch store.UpdatePointPatch) (*model.UpdatePoint, error) {
	point, err := s.FetchUpdatePoint(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return point, nil
	}

	changes := map[string]interface{}{}
	if patch.Name != nil {
		point.Name = *patch.Name
		changes["name"] = point.Name
	}
	if patch.Description != nil {
		point.Description = *patch.Description
		changes["description"] = point.Description
	}

	if err := s.db.WithContext(ctx).Model(point).Updates(changes).Error; err != nil {
		return nil, err
	}
	return point, nil
}

func (s *UpdatePointsStore) DeleteUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error) {
	point, err := s.FetchUpdatePoint(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(point).Error; err != nil {
		return nil, err
	}
	return point, nil
}
