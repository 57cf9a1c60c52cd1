package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// GranteeRepository 受助人数据访问接口
type GranteeRepository interface {
	Create(ctx context.Context, grantee *model.Grantee) error
	GetByID(ctx context.Context, id string) (*model.Grantee, error)
	List(ctx context.Context, keyword string, status string, offset, limit int) ([]model.Grantee, int64, error)
	Update(ctx context.Context, grantee *model.Grantee) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type granteeRepo struct {
	db *gorm.DB
}

// NewGranteeRepo 创建 GranteeRepository 实例
func NewGranteeRepo(db *gorm.DB) GranteeRepository {
	return &granteeRepo{db: db}
}

func (r *granteeRepo) Create(ctx context.Context, grantee *model.Grantee) error {
	return r.db.WithContext(ctx).Create(grantee).Error
}

func (r *granteeRepo) GetByID(ctx context.Context, id string) (*model.Grantee, error) {
	var grantee model.Grantee
	err := r.db.WithContext(ctx).
		Where("grantee_id = ?", id).
		First(&grantee).Error
	if err != nil {
		return nil, err
	}
	return &grantee, nil
}

func (r *granteeRepo) List(ctx context.Context, keyword string, status string, offset, limit int) ([]model.Grantee, int64, error) {
	var grantees []model.Grantee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Grantee{})

	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("name ILIKE ? OR phone ILIKE ? OR village ILIKE ?", like, like, like)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&grantees).Error; err != nil {
		return nil, 0, err
	}

	return grantees, total, nil
}

func (r *granteeRepo) Update(ctx context.Context, grantee *model.Grantee) error {
	return r.db.WithContext(ctx).Save(grantee).Error
}

func (r *granteeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Grantee{}).
		Where("grantee_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
