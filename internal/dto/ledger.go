package dto

// ── 资金台账模块 DTO ──

// CreateLedgerEntryRequest 创建台账条目请求
type CreateLedgerEntryRequest struct {
	GrantID     *string `json:"grant_id"    binding:"omitempty,uuid"`
	Type        string  `json:"type"        binding:"required,oneof=DISBURSEMENT REPAYMENT ADJUSTMENT"`
	Amount      int64   `json:"amount"      binding:"required,min=1"` // 单位：分
	EntryDate   string  `json:"entry_date"  binding:"required,datetime=2006-01-02"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
}

// LedgerListRequest 台账列表查询参数
type LedgerListRequest struct {
	GrantID  string `form:"grant_id" binding:"omitempty,uuid"`
	Type     string `form:"type"     binding:"omitempty,oneof=DISBURSEMENT REPAYMENT ADJUSTMENT"`
	From     string `form:"from"     binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"       binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// LedgerExportRequest 台账导出查询参数
type LedgerExportRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// LedgerEntryResponse 台账条目响应
type LedgerEntryResponse struct {
	ID          string  `json:"id"`
	GrantID     *string `json:"grant_id,omitempty"`
	Type        string  `json:"type"`
	Amount      int64   `json:"amount"`
	EntryDate   string  `json:"entry_date"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// LedgerSummaryResponse 台账汇总响应
type LedgerSummaryResponse struct {
	Disbursed int64 `json:"disbursed"` // 拨付合计（分）
	Repaid    int64 `json:"repaid"`    // 还款合计（分）
	Adjusted  int64 `json:"adjusted"`  // 调整合计（分）
	Balance   int64 `json:"balance"`   // 资金池净流量：还款 + 调整 − 拨付
}
