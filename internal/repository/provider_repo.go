package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// ProviderRepository 服务机构数据访问接口
type ProviderRepository interface {
	Create(ctx context.Context, provider *model.ServiceProvider) error
	GetByID(ctx context.Context, id string) (*model.ServiceProvider, error)
	List(ctx context.Context, keyword string, category string, offset, limit int) ([]model.ServiceProvider, int64, error)
	Update(ctx context.Context, provider *model.ServiceProvider) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type providerRepo struct {
	db *gorm.DB
}

// NewProviderRepo 创建 ProviderRepository 实例
func NewProviderRepo(db *gorm.DB) ProviderRepository {
	return &providerRepo{db: db}
}

func (r *providerRepo) Create(ctx context.Context, provider *model.ServiceProvider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepo) GetByID(ctx context.Context, id string) (*model.ServiceProvider, error) {
	var provider model.ServiceProvider
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", id).
		First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepo) List(ctx context.Context, keyword string, category string, offset, limit int) ([]model.ServiceProvider, int64, error) {
	var providers []model.ServiceProvider
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ServiceProvider{})

	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("name ILIKE ? OR location ILIKE ?", like, like)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("rating DESC, created_at DESC").
		Find(&providers).Error; err != nil {
		return nil, 0, err
	}

	return providers, total, nil
}

func (r *providerRepo) Update(ctx context.Context, provider *model.ServiceProvider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *providerRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ServiceProvider{}).
		Where("provider_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
