package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// NotificationResponse 通知信息响应
type NotificationResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	IsRead      bool    `json:"is_read"`
	SenderID    *string `json:"sender_id,omitempty"`
	RelatedType *string `json:"related_type,omitempty"`
	RelatedID   *string `json:"related_id,omitempty"`
	TaskID      *string `json:"task_id,omitempty"`
	ExpiresAt   *string `json:"expires_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// UnreadCountResponse 未读数响应
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// UpdateNotificationSettingRequest 更新通知偏好请求
type UpdateNotificationSettingRequest struct {
	EmailTaskReminders      *bool `json:"email_task_reminders"`
	InAppTaskReminders      *bool `json:"in_app_task_reminders"`
	EmailRepaymentReminders *bool `json:"email_repayment_reminders"`
	InAppRepaymentReminders *bool `json:"in_app_repayment_reminders"`
	EmailGrantUpdates       *bool `json:"email_grant_updates"`
	InAppGrantUpdates       *bool `json:"in_app_grant_updates"`
	EmailProgramUpdates     *bool `json:"email_program_updates"`
	InAppProgramUpdates     *bool `json:"in_app_program_updates"`
	ReminderLeadTime        *int  `json:"reminder_lead_time" binding:"omitempty,min=1,max=168"`
}

// NotificationSettingResponse 通知偏好响应
type NotificationSettingResponse struct {
	UserID                  string `json:"user_id"`
	EmailTaskReminders      bool   `json:"email_task_reminders"`
	InAppTaskReminders      bool   `json:"in_app_task_reminders"`
	EmailRepaymentReminders bool   `json:"email_repayment_reminders"`
	InAppRepaymentReminders bool   `json:"in_app_repayment_reminders"`
	EmailGrantUpdates       bool   `json:"email_grant_updates"`
	InAppGrantUpdates       bool   `json:"in_app_grant_updates"`
	EmailProgramUpdates     bool   `json:"email_program_updates"`
	InAppProgramUpdates     bool   `json:"in_app_program_updates"`
	ReminderLeadTime        int    `json:"reminder_lead_time"`
}

// SweepResultResponse 批处理执行结果响应
type SweepResultResponse struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
