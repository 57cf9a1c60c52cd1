package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// NotificationSettingRepository 通知偏好数据访问接口
type NotificationSettingRepository interface {
	Get(ctx context.Context, userID string) (*model.NotificationSetting, error)
	// CreateIfAbsent 幂等创建：主键冲突时不报错、不覆盖已有行。
	// 并发首次访问同一用户时由存储层唯一约束兜底，避免产生重复行
	CreateIfAbsent(ctx context.Context, setting *model.NotificationSetting) error
	Update(ctx context.Context, setting *model.NotificationSetting) error
	// ListTaskReminderEnabled 返回开启了站内任务提醒的全部偏好行（提醒批处理的迭代入口）
	ListTaskReminderEnabled(ctx context.Context) ([]model.NotificationSetting, error)
	// ListRepaymentReminderEnabled 返回开启了站内还款提醒的全部偏好行
	ListRepaymentReminderEnabled(ctx context.Context) ([]model.NotificationSetting, error)
}

type notificationSettingRepo struct {
	db *gorm.DB
}

// NewNotificationSettingRepo 创建 NotificationSettingRepository 实例
func NewNotificationSettingRepo(db *gorm.DB) NotificationSettingRepository {
	return &notificationSettingRepo{db: db}
}

func (r *notificationSettingRepo) Get(ctx context.Context, userID string) (*model.NotificationSetting, error) {
	var setting model.NotificationSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *notificationSettingRepo) CreateIfAbsent(ctx context.Context, setting *model.NotificationSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(setting).Error
}

func (r *notificationSettingRepo) Update(ctx context.Context, setting *model.NotificationSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *notificationSettingRepo) ListTaskReminderEnabled(ctx context.Context) ([]model.NotificationSetting, error) {
	var settings []model.NotificationSetting
	err := r.db.WithContext(ctx).
		Where("in_app_task_reminders = ?", true).
		Find(&settings).Error
	return settings, err
}

func (r *notificationSettingRepo) ListRepaymentReminderEnabled(ctx context.Context) ([]model.NotificationSetting, error) {
	var settings []model.NotificationSetting
	err := r.db.WithContext(ctx).
		Where("in_app_repayment_reminders = ?", true).
		Find(&settings).Error
	return settings, err
}
