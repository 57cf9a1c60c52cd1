package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// ProviderHandler 服务机构模块 HTTP 处理器
type ProviderHandler struct {
	providerSvc service.ProviderService
}

// NewProviderHandler 创建 ProviderHandler
func NewProviderHandler(providerSvc service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerSvc: providerSvc}
}

// Create 创建服务机构
// POST /api/v1/providers
func (h *ProviderHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	provider, err := h.providerSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, provider)
}

// GetByID 服务机构详情
// GET /api/v1/providers/:id
func (h *ProviderHandler) GetByID(c *gin.Context) {
	provider, err := h.providerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			response.NotFound(c, 32001, "服务机构不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, provider)
}

// List 服务机构列表
// GET /api/v1/providers
func (h *ProviderHandler) List(c *gin.Context) {
	var req dto.ProviderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.providerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update 更新服务机构
// PUT /api/v1/providers/:id
func (h *ProviderHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	provider, err := h.providerSvc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			response.NotFound(c, 32001, "服务机构不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, provider)
}

// Delete 删除服务机构
// DELETE /api/v1/providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.providerSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			response.NotFound(c, 32001, "服务机构不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
