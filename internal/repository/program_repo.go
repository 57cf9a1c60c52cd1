package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// ProgramRepository 资助项目数据访问接口
type ProgramRepository interface {
	Create(ctx context.Context, program *model.Program) error
	GetByID(ctx context.Context, id string) (*model.Program, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.Program, int64, error)
	Update(ctx context.Context, program *model.Program) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo 创建 ProgramRepository 实例
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) Create(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepo) GetByID(ctx context.Context, id string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("program_id = ?", id).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Program, int64, error) {
	var programs []model.Program
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Program{})

	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Manager").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&programs).Error; err != nil {
		return nil, 0, err
	}

	return programs, total, nil
}

func (r *programRepo) Update(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

func (r *programRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Program{}).
		Where("program_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
