package dto

// ── 受助人模块 DTO ──

// CreateGranteeRequest 创建受助人请求
type CreateGranteeRequest struct {
	Name     string `json:"name"      binding:"required,min=2,max=100"`
	Gender   string `json:"gender"    binding:"omitempty,oneof=male female other"`
	Phone    string `json:"phone"     binding:"omitempty,max=20"`
	IDNumber string `json:"id_number" binding:"omitempty,max=30"`
	Village  string `json:"village"   binding:"omitempty,max=100"`
	Address  string `json:"address"   binding:"omitempty,max=255"`
	Notes    string `json:"notes"     binding:"omitempty,max=2000"`
}

// UpdateGranteeRequest 更新受助人请求
type UpdateGranteeRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Gender   *string `json:"gender"    binding:"omitempty,oneof=male female other"`
	Phone    *string `json:"phone"     binding:"omitempty,max=20"`
	IDNumber *string `json:"id_number" binding:"omitempty,max=30"`
	Village  *string `json:"village"   binding:"omitempty,max=100"`
	Address  *string `json:"address"   binding:"omitempty,max=255"`
	Notes    *string `json:"notes"     binding:"omitempty,max=2000"`
	Status   *string `json:"status"    binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// GranteeListRequest 受助人列表查询参数
type GranteeListRequest struct {
	Keyword  string `form:"keyword"  binding:"omitempty,max=100"`
	Status   string `form:"status"   binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page     int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// GranteeResponse 受助人信息响应
type GranteeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IDNumber  string `json:"id_number,omitempty"`
	Village   string `json:"village,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
