package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// NotificationListFilter 通知列表过滤条件
type NotificationListFilter struct {
	RecipientID string
	UnreadOnly  bool
	Offset      int
	Limit       int
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context, filter *NotificationListFilter) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, id string, recipientID string) error

	// CountRecentTaskNotifications 统计 since 之后为 (recipient, task, type) 创建的通知数，
	// 提醒批处理的 24h 去重检查依赖此查询
	CountRecentTaskNotifications(ctx context.Context, recipientID, taskID, notifType string, since time.Time) (int64, error)
	// CountRecentRelatedNotifications 同上，按 related (type, id) 维度去重
	CountRecentRelatedNotifications(ctx context.Context, recipientID, relatedType, relatedID, notifType string, since time.Time) (int64, error)
	// DeleteExpired 批量删除 expires_at 严格早于 now 的通知，返回删除行数；
	// expires_at 为 NULL 的通知永不被此操作删除
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", id).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) List(ctx context.Context, filter *NotificationListFilter) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ?", filter.RecipientID)

	if filter.UnreadOnly {
		db = db.Where("is_read = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(filter.Offset).Limit(filter.Limit).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string, recipientID string) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("notification_id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *notificationRepo) Delete(ctx context.Context, id string, recipientID string) error {
	result := r.db.WithContext(ctx).
		Where("notification_id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) CountRecentTaskNotifications(ctx context.Context, recipientID, taskID, notifType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND task_id = ? AND type = ?", recipientID, taskID, notifType).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) CountRecentRelatedNotifications(ctx context.Context, recipientID, relatedType, relatedID, notifType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND related_type = ? AND related_id = ? AND type = ?",
			recipientID, relatedType, relatedID, notifType).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
