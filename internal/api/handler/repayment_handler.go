package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	pkgerrors "github.com/Vaidy74/Yathashakti-sub001/pkg/errors"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// RepaymentHandler 还款模块 HTTP 处理器
type RepaymentHandler struct {
	repaymentSvc service.RepaymentService
}

// NewRepaymentHandler 创建 RepaymentHandler
func NewRepaymentHandler(repaymentSvc service.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentSvc: repaymentSvc}
}

// Create 登记还款
// POST /api/v1/repayments
func (h *RepaymentHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	repayment, err := h.repaymentSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGrantNotFound):
			response.NotFound(c, 40001, "资助金不存在")
		case errors.Is(err, service.ErrGrantNotRepayable):
			response.Conflict(c, 41002, "资助金当前状态不接受还款")
		case errors.Is(err, service.ErrInstallmentNotFound):
			response.BadRequest(c, 41003, "分期不存在")
		case errors.Is(err, service.ErrInstallmentSettled):
			response.Conflict(c, 41004, "该分期已结清")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Conflict(c, 40007, "数据已被其他操作修改，请刷新后重试")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, repayment)
}

// GetByID 还款详情
// GET /api/v1/repayments/:id
func (h *RepaymentHandler) GetByID(c *gin.Context) {
	repayment, err := h.repaymentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRepaymentNotFound) {
			response.NotFound(c, 41001, "还款记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, repayment)
}

// List 还款列表
// GET /api/v1/repayments
func (h *RepaymentHandler) List(c *gin.Context) {
	var req dto.RepaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.repaymentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// ListByGrant 某资助金下的全部还款记录
// GET /api/v1/grants/:id/repayments
func (h *RepaymentHandler) ListByGrant(c *gin.Context) {
	list, err := h.repaymentSvc.ListByGrant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			response.NotFound(c, 40001, "资助金不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Delete 删除还款记录
// DELETE /api/v1/repayments/:id
func (h *RepaymentHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.repaymentSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrRepaymentNotFound) {
			response.NotFound(c, 41001, "还款记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
