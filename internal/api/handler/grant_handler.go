package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	pkgerrors "github.com/Vaidy74/Yathashakti-sub001/pkg/errors"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// GrantHandler 资助金模块 HTTP 处理器
type GrantHandler struct {
	grantSvc service.GrantService
}

// NewGrantHandler 创建 GrantHandler
func NewGrantHandler(grantSvc service.GrantService) *GrantHandler {
	return &GrantHandler{grantSvc: grantSvc}
}

// Create 创建资助金
// POST /api/v1/grants
func (h *GrantHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grant, err := h.grantSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGranteeNotFound):
			response.BadRequest(c, 30001, "受助人不存在")
		case errors.Is(err, service.ErrProgramNotFound):
			response.BadRequest(c, 31001, "项目不存在")
		case errors.Is(err, service.ErrProviderNotFound):
			response.BadRequest(c, 32001, "服务机构不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, grant)
}

// GetByID 资助金详情
// GET /api/v1/grants/:id
func (h *GrantHandler) GetByID(c *gin.Context) {
	grant, err := h.grantSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			response.NotFound(c, 40001, "资助金不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, grant)
}

// List 资助金列表
// GET /api/v1/grants
func (h *GrantHandler) List(c *gin.Context) {
	var req dto.GrantListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.grantSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update 更新资助金（含状态流转与手工还款计划）
// PUT /api/v1/grants/:id
func (h *GrantHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grant, err := h.grantSvc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGrantNotFound):
			response.NotFound(c, 40001, "资助金不存在")
		case errors.Is(err, service.ErrInvalidStatusTransfer):
			response.Conflict(c, 40002, err.Error())
		case errors.Is(err, service.ErrGrantTerminal):
			response.Conflict(c, 40003, "资助金已进入终态，不可修改")
		case errors.Is(err, service.ErrAmountLockedBySchedule):
			response.Conflict(c, 40005, "已有还款计划时不能修改资助总额")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Conflict(c, 40007, "数据已被其他操作修改，请刷新后重试")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, grant)
}

// Delete 删除资助金
// DELETE /api/v1/grants/:id
func (h *GrantHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.grantSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			response.NotFound(c, 40001, "资助金不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GenerateSchedule 生成等额分期还款计划（整体替换既有计划）
// POST /api/v1/grants/:id/generate-schedule
func (h *GrantHandler) GenerateSchedule(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grant, err := h.grantSvc.GenerateSchedule(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGrantNotFound):
			response.NotFound(c, 40001, "资助金不存在")
		case errors.Is(err, service.ErrScheduleOnUnapproved):
			response.Conflict(c, 40004, "未批准的资助金不能生成还款计划")
		case errors.Is(err, service.ErrGrantTerminal):
			response.Conflict(c, 40003, "资助金已进入终态，不可修改")
		case errors.Is(err, service.ErrInvalidTotalAmount),
			errors.Is(err, service.ErrInvalidInstallmentCount),
			errors.Is(err, service.ErrInvalidInterval):
			response.BadRequest(c, 40006, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, grant)
}

// ValidateSchedule 校验还款计划与资助总额的差额
// GET /api/v1/grants/:id/validate-schedule
func (h *GrantHandler) ValidateSchedule(c *gin.Context) {
	result, err := h.grantSvc.ValidateSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			response.NotFound(c, 40001, "资助金不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
