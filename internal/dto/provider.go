package dto

// ── 服务机构模块 DTO ──

// CreateProviderRequest 创建服务机构请求
type CreateProviderRequest struct {
	Name        string  `json:"name"         binding:"required,min=2,max=200"`
	Category    string  `json:"category"     binding:"omitempty,max=50"`
	ContactName string  `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string  `json:"phone"        binding:"omitempty,max=20"`
	Email       string  `json:"email"        binding:"omitempty,email"`
	Location    string  `json:"location"     binding:"omitempty,max=200"`
	Rating      float64 `json:"rating"       binding:"omitempty,min=0,max=5"`
}

// UpdateProviderRequest 更新服务机构请求
type UpdateProviderRequest struct {
	Name        *string  `json:"name"         binding:"omitempty,min=2,max=200"`
	Category    *string  `json:"category"     binding:"omitempty,max=50"`
	ContactName *string  `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string  `json:"phone"        binding:"omitempty,max=20"`
	Email       *string  `json:"email"        binding:"omitempty,email"`
	Location    *string  `json:"location"     binding:"omitempty,max=200"`
	Rating      *float64 `json:"rating"       binding:"omitempty,min=0,max=5"`
	Status      *string  `json:"status"       binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ProviderListRequest 服务机构列表查询参数
type ProviderListRequest struct {
	Keyword  string `form:"keyword"  binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=50"`
	Page     int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ProviderResponse 服务机构信息响应
type ProviderResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	ContactName string  `json:"contact_name,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Location    string  `json:"location,omitempty"`
	Rating      float64 `json:"rating"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
