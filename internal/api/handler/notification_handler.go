package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 当前用户通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// UnreadCount 当前用户未读通知数
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.UnreadCountResponse{Count: count})
}

// MarkRead 标记单条通知已读
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 44001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// MarkAllRead 标记全部通知已读
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Delete 删除单条通知
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 44001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetSettings 当前用户通知偏好（首次读取自动初始化默认值）
// GET /api/v1/notifications/settings
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	setting, err := h.notificationSvc.GetUserSettings(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, settingToResponse(setting))
}

// UpdateSettings 更新当前用户通知偏好
// PUT /api/v1/notifications/settings
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNotificationSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	setting, err := h.notificationSvc.UpdateUserSettings(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, setting)
}

func settingToResponse(setting *model.NotificationSetting) *dto.NotificationSettingResponse {
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
