package dto

// ── 还款记录模块 DTO ──

// CreateRepaymentRequest 登记还款请求
type CreateRepaymentRequest struct {
	GrantID       string `json:"grant_id"       binding:"required,uuid"`
	InstallmentID string `json:"installment_id" binding:"required,uuid"`
	Amount        int64  `json:"amount"         binding:"required,min=1"` // 单位：分
	Method        string `json:"method"         binding:"omitempty,oneof=CASH TRANSFER OTHER"`
	PaidAt        string `json:"paid_at"        binding:"required,datetime=2006-01-02"`
	Note          string `json:"note"           binding:"omitempty,max=2000"`
}

// RepaymentListRequest 还款记录列表查询参数
type RepaymentListRequest struct {
	Page     int `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// RepaymentResponse 还款记录响应
type RepaymentResponse struct {
	ID            string `json:"id"`
	GrantID       string `json:"grant_id"`
	InstallmentID string `json:"installment_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	PaidAt        string `json:"paid_at"`
	Note          string `json:"note,omitempty"`
	CreatedAt     string `json:"created_at"`
}
