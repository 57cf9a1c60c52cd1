package dto

// ── 资助项目模块 DTO ──

// CreateProgramRequest 创建项目请求
type CreateProgramRequest struct {
	Name         string  `json:"name"          binding:"required,min=2,max=200"`
	Description  string  `json:"description"   binding:"omitempty,max=5000"`
	Category     string  `json:"category"      binding:"omitempty,max=50"`
	BudgetAmount int64   `json:"budget_amount" binding:"omitempty,min=0"`
	StartDate    *string `json:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	ManagerID    *string `json:"manager_id"    binding:"omitempty,uuid"`
}

// UpdateProgramRequest 更新项目请求
type UpdateProgramRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=200"`
	Description  *string `json:"description"   binding:"omitempty,max=5000"`
	Category     *string `json:"category"      binding:"omitempty,max=50"`
	Status       *string `json:"status"        binding:"omitempty,oneof=PLANNING ACTIVE CLOSED"`
	BudgetAmount *int64  `json:"budget_amount" binding:"omitempty,min=0"`
	StartDate    *string `json:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	ManagerID    *string `json:"manager_id"    binding:"omitempty,uuid"`
}

// ProgramListRequest 项目列表查询参数
type ProgramListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=PLANNING ACTIVE CLOSED"`
	Page     int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ProgramResponse 项目信息响应
type ProgramResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty"`
	Status       string  `json:"status"`
	BudgetAmount int64   `json:"budget_amount"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	ManagerID    *string `json:"manager_id,omitempty"`
	ManagerName  string  `json:"manager_name,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
