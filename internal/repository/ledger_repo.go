package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// LedgerListFilter 台账列表过滤条件
type LedgerListFilter struct {
	GrantID string
	Type    string
	From    *time.Time
	To      *time.Time
	Offset  int
	Limit   int
}

// LedgerSummary 台账按类型汇总结果
type LedgerSummary struct {
	Type  string `json:"type"`
	Total int64  `json:"total"`
	Count int64  `json:"count"`
}

// LedgerRepository 资金台账数据访问接口
type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*model.LedgerEntry, error)
	List(ctx context.Context, filter *LedgerListFilter) ([]model.LedgerEntry, int64, error)
	Update(ctx context.Context, entry *model.LedgerEntry) error
	Delete(ctx context.Context, id string) error
	// SummarizeByType 按条目类型汇总指定期间的金额与笔数
	SummarizeByType(ctx context.Context, from, to *time.Time) ([]LedgerSummary, error)
	// ListForExport 返回指定期间的全部条目（含关联资助金），导出用
	ListForExport(ctx context.Context, from, to *time.Time) ([]model.LedgerEntry, error)
}

type ledgerRepo struct {
	db *gorm.DB
}

// NewLedgerRepo 创建 LedgerRepository 实例
func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepo) GetByID(ctx context.Context, id string) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepo) applyFilter(db *gorm.DB, filter *LedgerListFilter) *gorm.DB {
	if filter.GrantID != "" {
		db = db.Where("grant_id = ?", filter.GrantID)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		db = db.Where("entry_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("entry_date <= ?", *filter.To)
	}
	return db
}

func (r *ledgerRepo) List(ctx context.Context, filter *LedgerListFilter) ([]model.LedgerEntry, int64, error) {
	var entries []model.LedgerEntry
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.LedgerEntry{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(filter.Offset).Limit(filter.Limit).
		Order("entry_date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *ledgerRepo) Update(ctx context.Context, entry *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *ledgerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.LedgerEntry{}).Error
}

func (r *ledgerRepo) SummarizeByType(ctx context.Context, from, to *time.Time) ([]LedgerSummary, error) {
	var result []LedgerSummary

	db := r.db.WithContext(ctx).Model(&model.LedgerEntry{})
	if from != nil {
		db = db.Where("entry_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("entry_date <= ?", *to)
	}

	err := db.Select("type, SUM(amount) AS total, COUNT(*) AS count").
		Group("type").
		Scan(&result).Error
	return result, err
}

func (r *ledgerRepo) ListForExport(ctx context.Context, from, to *time.Time) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry

	db := r.db.WithContext(ctx).Preload("Grant").Preload("Grant.Grantee")
	if from != nil {
		db = db.Where("entry_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("entry_date <= ?", *to)
	}

	err := db.Order("entry_date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}
