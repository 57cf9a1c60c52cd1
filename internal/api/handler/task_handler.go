package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// Create 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDueDate):
			response.BadRequest(c, 42002, "到期时间格式无效")
		case errors.Is(err, service.ErrUserNotFound):
			response.BadRequest(c, 20001, "指派的用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, task)
}

// GetByID 任务详情
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 42001, "任务不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, task)
}

// List 任务列表
// GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	var req dto.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.taskSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update 更新任务
// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 42001, "任务不存在")
		case errors.Is(err, service.ErrInvalidDueDate):
			response.BadRequest(c, 42002, "到期时间格式无效")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, task)
}

// Delete 删除任务
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 42001, "任务不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ExportCalendar 导出当前用户的待办任务为 iCalendar
// GET /api/v1/tasks/calendar
func (h *TaskHandler) ExportCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ical, err := h.taskSvc.ExportCalendar(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tasks.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}
