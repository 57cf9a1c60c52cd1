package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// RepaymentRepository 还款记录数据访问接口
type RepaymentRepository interface {
	Create(ctx context.Context, repayment *model.Repayment) error
	GetByID(ctx context.Context, id string) (*model.Repayment, error)
	ListByGrant(ctx context.Context, grantID string) ([]model.Repayment, error)
	List(ctx context.Context, offset, limit int) ([]model.Repayment, int64, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type repaymentRepo struct {
	db *gorm.DB
}

// NewRepaymentRepo 创建 RepaymentRepository 实例
func NewRepaymentRepo(db *gorm.DB) RepaymentRepository {
	return &repaymentRepo{db: db}
}

func (r *repaymentRepo) Create(ctx context.Context, repayment *model.Repayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

func (r *repaymentRepo) GetByID(ctx context.Context, id string) (*model.Repayment, error) {
	var repayment model.Repayment
	err := r.db.WithContext(ctx).
		Where("repayment_id = ?", id).
		First(&repayment).Error
	if err != nil {
		return nil, err
	}
	return &repayment, nil
}

func (r *repaymentRepo) ListByGrant(ctx context.Context, grantID string) ([]model.Repayment, error) {
	var repayments []model.Repayment
	err := r.db.WithContext(ctx).
		Where("grant_id = ?", grantID).
		Order("paid_at ASC").
		Find(&repayments).Error
	return repayments, err
}

func (r *repaymentRepo) List(ctx context.Context, offset, limit int) ([]model.Repayment, int64, error) {
	var repayments []model.Repayment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Repayment{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Grant").
		Offset(offset).Limit(limit).
		Order("paid_at DESC").
		Find(&repayments).Error; err != nil {
		return nil, 0, err
	}

	return repayments, total, nil
}

func (r *repaymentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Repayment{}).
		Where("repayment_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
