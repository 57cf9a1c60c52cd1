package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

// LedgerHandler 资金台账模块 HTTP 处理器
type LedgerHandler struct {
	ledgerSvc service.LedgerService
	exportSvc service.ExportService
}

// NewLedgerHandler 创建 LedgerHandler
func NewLedgerHandler(ledgerSvc service.LedgerService, exportSvc service.ExportService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, exportSvc: exportSvc}
}

// Create 创建台账条目（手工调整）
// POST /api/v1/ledger
func (h *LedgerHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.ledgerSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			response.BadRequest(c, 40001, "资助金不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, entry)
}

// GetByID 台账条目详情
// GET /api/v1/ledger/:id
func (h *LedgerHandler) GetByID(c *gin.Context) {
	entry, err := h.ledgerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLedgerEntryNotFound) {
			response.NotFound(c, 43001, "台账条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, entry)
}

// List 台账列表
// GET /api/v1/ledger
func (h *LedgerHandler) List(c *gin.Context) {
	var req dto.LedgerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.ledgerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Summary 资金池汇总
// GET /api/v1/ledger/summary
func (h *LedgerHandler) Summary(c *gin.Context) {
	summary, err := h.ledgerSvc.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, summary)
}

// Delete 删除台账条目
// DELETE /api/v1/ledger/:id
func (h *LedgerHandler) Delete(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	if err := h.ledgerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrLedgerEntryNotFound) {
			response.NotFound(c, 43001, "台账条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Export 导出台账 Excel
// GET /api/v1/ledger/export
func (h *LedgerHandler) Export(c *gin.Context) {
	var req dto.LedgerExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportLedger(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	// 文件名含中文，需要 URL 转义
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.QueryEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
