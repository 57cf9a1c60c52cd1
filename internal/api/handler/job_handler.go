package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// JobHandler 定时任务触发入口（由外部调度器定期调用，仅管理员可用）
type JobHandler struct {
	reminderSvc     service.ReminderService
	notificationSvc service.NotificationService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(reminderSvc service.ReminderService, notificationSvc service.NotificationService) *JobHandler {
	return &JobHandler{reminderSvc: reminderSvc, notificationSvc: notificationSvc}
}

// CheckReminders 扫描并发送任务到期提醒
// POST /api/v1/jobs/check-reminders
func (h *JobHandler) CheckReminders(c *gin.Context) {
	result, err := h.reminderSvc.CheckAndSendTaskReminders(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, sweepToResponse(result))
}

// OverdueReminders 扫描并发送任务逾期提醒
// POST /api/v1/jobs/overdue-reminders
func (h *JobHandler) OverdueReminders(c *gin.Context) {
	result, err := h.reminderSvc.SendOverdueTaskReminders(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, sweepToResponse(result))
}

// RepaymentReminders 扫描并发送还款到期/逾期提醒
// POST /api/v1/jobs/repayment-reminders
func (h *JobHandler) RepaymentReminders(c *gin.Context) {
	result, err := h.reminderSvc.SendRepaymentReminders(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, sweepToResponse(result))
}

// Cleanup 清理已过期通知
// POST /api/v1/jobs/cleanup
func (h *JobHandler) Cleanup(c *gin.Context) {
	deleted, err := h.notificationSvc.DeleteExpired(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

func sweepToResponse(r *service.SweepResult) *dto.SweepResultResponse {
	return &dto.SweepResultResponse{
		Scanned: r.Scanned,
		Sent:    r.Sent,
		Skipped: r.Skipped,
		Failed:  r.Failed,
	}
}
