package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// ── 通知模块业务错误 ──

var (
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrRecipientRequired    = errors.New("通知接收人不能为空")
	ErrTaskContextRequired  = errors.New("任务上下文缺失")
	ErrInvalidExpiry        = errors.New("通知过期时间必须晚于创建时间")
)

// 消息插值中无法解析操作者时使用的占位名
const unknownActorName = "有人"

// 任务截止时间缺省时消息中使用的字面量
const dueDateUnspecified = "未指定"

// CreateNotificationParams 创建通知参数
type CreateNotificationParams struct {
	RecipientID string
	SenderID    *string
	Type        string
	Title       string
	Message     string
	RelatedType *string
	RelatedID   *string
	TaskID      *string
	ExpiresAt   *time.Time
}

// NotificationService 通知业务接口
//
// 所有通知创建与用户偏好读取的唯一入口：
//   - 发送函数先做偏好闸门检查，站内开关关闭时静默返回 (nil, nil)，不视为错误
//   - 通知经由 Create 落库，存储失败原样上抛
type NotificationService interface {
	// Create 持久化一条通知；仅校验必填字段与过期时间
	Create(ctx context.Context, params *CreateNotificationParams) (*model.Notification, error)
	// GetUserSettings 读取用户通知偏好；不存在时按默认值惰性创建（幂等）
	GetUserSettings(ctx context.Context, userID string) (*model.NotificationSetting, error)
	// UpdateUserSettings 更新用户通知偏好
	UpdateUserSettings(ctx context.Context, userID string, req *dto.UpdateNotificationSettingRequest) (*dto.NotificationSettingResponse, error)

	// SendTaskReminder 发送任务到期/逾期提醒；task 为 nil 时返回 ErrTaskContextRequired；
	// 用户关闭站内任务提醒时静默返回 (nil, nil)
	SendTaskReminder(ctx context.Context, userID string, task *model.Task) (*model.Notification, error)
	// SendTaskAssigned 发送任务分配通知，sender 为操作者
	SendTaskAssigned(ctx context.Context, userID, actorID string, task *model.Task) (*model.Notification, error)
	// SendTaskCompleted 发送任务完成通知，sender 为操作者
	SendTaskCompleted(ctx context.Context, userID, actorID string, task *model.Task) (*model.Notification, error)
	// SendGrantStatusUpdate 发送资助金状态变更通知
	SendGrantStatusUpdate(ctx context.Context, userID string, grant *model.Grant, oldStatus string) (*model.Notification, error)
	// SendProgramUpdate 发送项目动态通知
	SendProgramUpdate(ctx context.Context, userID string, program *model.Program) (*model.Notification, error)

	// List 按接收人分页查询通知
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	// DeleteExpired 批量删除已过期通知，返回删除行数；失败仅记录日志
	DeleteExpired(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *notificationService) Create(ctx context.Context, params *CreateNotificationParams) (*model.Notification, error) {
	if params.RecipientID == "" {
		return nil, ErrRecipientRequired
	}
	if params.ExpiresAt != nil && !params.ExpiresAt.After(time.Now()) {
		return nil, ErrInvalidExpiry
	}

	notification := &model.Notification{
		RecipientID: params.RecipientID,
		SenderID:    params.SenderID,
		Type:        params.Type,
		Title:       params.Title,
		Message:     params.Message,
		RelatedType: params.RelatedType,
		RelatedID:   params.RelatedID,
		TaskID:      params.TaskID,
		ExpiresAt:   params.ExpiresAt,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.logger.Error("创建通知失败",
			zap.String("recipient_id", params.RecipientID),
			zap.String("type", params.Type),
			zap.Error(err),
		)
		return nil, err
	}

	return notification, nil
}

// ────────────────────── GetUserSettings ──────────────────────

func (s *notificationService) GetUserSettings(ctx context.Context, userID string) (*model.NotificationSetting, error) {
	setting, err := s.repo.NotificationSetting.Get(ctx, userID)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 首次访问：按默认值惰性创建。并发双写由主键唯一约束兜底（ON CONFLICT DO NOTHING），
	// 创建后重读保证各调用方看到同一行
	if err := s.repo.NotificationSetting.CreateIfAbsent(ctx, model.DefaultNotificationSetting(userID)); err != nil {
		s.logger.Error("创建默认通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.repo.NotificationSetting.Get(ctx, userID)
}

// ────────────────────── UpdateUserSettings ──────────────────────

func (s *notificationService) UpdateUserSettings(ctx context.Context, userID string, req *dto.UpdateNotificationSettingRequest) (*dto.NotificationSettingResponse, error) {
	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.EmailTaskReminders != nil {
		setting.EmailTaskReminders = *req.EmailTaskReminders
	}
	if req.InAppTaskReminders != nil {
		setting.InAppTaskReminders = *req.InAppTaskReminders
	}
	if req.EmailRepaymentReminders != nil {
		setting.EmailRepaymentReminders = *req.EmailRepaymentReminders
	}
	if req.InAppRepaymentReminders != nil {
		setting.InAppRepaymentReminders = *req.InAppRepaymentReminders
	}
	if req.EmailGrantUpdates != nil {
		setting.EmailGrantUpdates = *req.EmailGrantUpdates
	}
	if req.InAppGrantUpdates != nil {
		setting.InAppGrantUpdates = *req.InAppGrantUpdates
	}
	if req.EmailProgramUpdates != nil {
		setting.EmailProgramUpdates = *req.EmailProgramUpdates
	}
	if req.InAppProgramUpdates != nil {
		setting.InAppProgramUpdates = *req.InAppProgramUpdates
	}
	if req.ReminderLeadTime != nil {
		setting.ReminderLeadTime = *req.ReminderLeadTime
	}

	if err := s.repo.NotificationSetting.Update(ctx, setting); err != nil {
		s.logger.Error("更新通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.toSettingResponse(setting), nil
}

// ────────────────────── 任务事件通知 ──────────────────────

func (s *notificationService) SendTaskReminder(ctx context.Context, userID string, task *model.Task) (*model.Notification, error) {
	if task == nil {
		return nil, ErrTaskContextRequired
	}

	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !setting.InAppTaskReminders {
		// 用户已关闭站内任务提醒：静默跳过，非错误
		return nil, nil
	}

	// 到期描述：未设置截止时间用字面量占位；已过期与未到期共用同一格式化路径
	dueText := dueDateUnspecified
	overdue := false
	if task.DueDate != nil {
		dueText = fmtDate(*task.DueDate)
		overdue = task.DueDate.Before(time.Now())
	}

	title := "任务到期提醒"
	message := fmt.Sprintf("任务「%s」将于 %s 到期，请及时处理", task.Title, dueText)
	if overdue {
		title = "任务逾期提醒"
		message = fmt.Sprintf("任务「%s」已于 %s 逾期，请尽快处理", task.Title, dueText)
	}

	return s.Create(ctx, &CreateNotificationParams{
		RecipientID: userID,
		Type:        model.NotificationTypeTaskReminder,
		Title:       title,
		Message:     message,
		TaskID:      &task.TaskID,
	})
}

func (s *notificationService) SendTaskAssigned(ctx context.Context, userID, actorID string, task *model.Task) (*model.Notification, error) {
	if task == nil {
		return nil, ErrTaskContextRequired
	}

	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !setting.InAppTaskReminders {
		return nil, nil
	}

	return s.Create(ctx, &CreateNotificationParams{
		RecipientID: userID,
		SenderID:    &actorID,
		Type:        model.NotificationTypeTaskAssigned,
		Title:       "新任务分配",
		Message:     fmt.Sprintf("%s 给你分配了任务「%s」", s.actorName(ctx, actorID), task.Title),
		TaskID:      &task.TaskID,
	})
}

func (s *notificationService) SendTaskCompleted(ctx context.Context, userID, actorID string, task *model.Task) (*model.Notification, error) {
	if task == nil {
		return nil, ErrTaskContextRequired
	}

	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !setting.InAppTaskReminders {
		return nil, nil
	}

	return s.Create(ctx, &CreateNotificationParams{
		RecipientID: userID,
		SenderID:    &actorID,
		Type:        model.NotificationTypeTaskCompleted,
		Title:       "任务已完成",
		Message:     fmt.Sprintf("%s 完成了任务「%s」", s.actorName(ctx, actorID), task.Title),
		TaskID:      &task.TaskID,
	})
}

// ────────────────────── 资助金 / 项目通知 ──────────────────────

func (s *notificationService) SendGrantStatusUpdate(ctx context.Context, userID string, grant *model.Grant, oldStatus string) (*model.Notification, error) {
	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !setting.InAppGrantUpdates {
		return nil, nil
	}

	relatedType := "grant"
	return s.Create(ctx, &CreateNotificationParams{
		RecipientID: userID,
		Type:        model.NotificationTypeGrantStatusUpdate,
		Title:       "资助金状态更新",
		Message:     fmt.Sprintf("资助金状态由 %s 变更为 %s", oldStatus, grant.Status),
		RelatedType: &relatedType,
		RelatedID:   &grant.GrantID,
	})
}

func (s *notificationService) SendProgramUpdate(ctx context.Context, userID string, program *model.Program) (*model.Notification, error) {
	setting, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !setting.InAppProgramUpdates {
		return nil, nil
	}

	relatedType := "program"
	return s.Create(ctx, &CreateNotificationParams{
		RecipientID: userID,
		Type:        model.NotificationTypeProgramUpdate,
		Title:       "项目动态",
		Message:     fmt.Sprintf("项目「%s」有更新，当前状态：%s", program.Name, program.Status),
		RelatedType: &relatedType,
		RelatedID:   &program.ProgramID,
	})
}

// ────────────────────── 查询与读状态 ──────────────────────

func (s *notificationService) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.List(ctx, &repository.NotificationListFilter{
		RecipientID: userID,
		UnreadOnly:  req.UnreadOnly,
		Offset:      (req.Page - 1) * req.PageSize,
		Limit:       req.PageSize,
	})
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, *s.toNotificationResponse(&notifications[i]))
	}

	return result, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("统计未读通知失败", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string, userID string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id string, userID string) error {
	if err := s.repo.Notification.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("删除通知失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── DeleteExpired ──────────────────────

func (s *notificationService) DeleteExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.Notification.DeleteExpired(ctx, time.Now())
	if err != nil {
		// 尽力而为的清理任务：记录日志，由触发方决定是否重试
		s.logger.Error("清理过期通知失败", zap.Error(err))
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("清理过期通知完成", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

// ── 内部辅助方法 ──

// actorName 解析操作者显示名；无法解析时返回占位名
func (s *notificationService) actorName(ctx context.Context, actorID string) string {
	user, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil || user == nil {
		return unknownActorName
	}
	return user.Name
}

func (s *notificationService) toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	var expiresAt *string
	if n.ExpiresAt != nil {
		v := fmtTimestamp(*n.ExpiresAt)
		expiresAt = &v
	}

	return &dto.NotificationResponse{
		ID:          n.NotificationID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		IsRead:      n.IsRead,
		SenderID:    n.SenderID,
		RelatedType: n.RelatedType,
		RelatedID:   n.RelatedID,
		TaskID:      n.TaskID,
		ExpiresAt:   expiresAt,
		CreatedAt:   fmtTimestamp(n.CreatedAt),
	}
}

func (s *notificationService) toSettingResponse(setting *model.NotificationSetting) *dto.NotificationSettingResponse {
	return &dto.NotificationSettingResponse{
		UserID:                  setting.UserID,
		EmailTaskReminders:      setting.EmailTaskReminders,
		InAppTaskReminders:      setting.InAppTaskReminders,
		EmailRepaymentReminders: setting.EmailRepaymentReminders,
		InAppRepaymentReminders: setting.InAppRepaymentReminders,
		EmailGrantUpdates:       setting.EmailGrantUpdates,
		InAppGrantUpdates:       setting.InAppGrantUpdates,
		EmailProgramUpdates:     setting.EmailProgramUpdates,
		InAppProgramUpdates:     setting.InAppProgramUpdates,
		ReminderLeadTime:        setting.ReminderLeadTime,
	}
}
