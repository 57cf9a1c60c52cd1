package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// ProgramHandler 项目模块 HTTP 处理器
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// Create 创建项目
// POST /api/v1/programs
func (h *ProgramHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	program, err := h.programSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProgramDate) {
			response.BadRequest(c, 31002, "项目结束日期不能早于开始日期")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, program)
}

// GetByID 项目详情
// GET /api/v1/programs/:id
func (h *ProgramHandler) GetByID(c *gin.Context) {
	program, err := h.programSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 31001, "项目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, program)
}

// List 项目列表
// GET /api/v1/programs
func (h *ProgramHandler) List(c *gin.Context) {
	var req dto.ProgramListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.programSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update 更新项目
// PUT /api/v1/programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	program, err := h.programSvc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			response.NotFound(c, 31001, "项目不存在")
		case errors.Is(err, service.ErrInvalidProgramDate):
			response.BadRequest(c, 31002, "项目结束日期不能早于开始日期")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, program)
}

// Delete 删除项目
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.programSvc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 31001, "项目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
