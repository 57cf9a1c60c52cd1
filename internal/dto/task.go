package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string  `json:"title"        binding:"required,min=2,max=200"`
	Description string  `json:"description"  binding:"omitempty,max=5000"`
	DueDate     *string `json:"due_date"     binding:"omitempty"`
	AssigneeID  *string `json:"assignee_id"  binding:"omitempty,uuid"`
	RelatedType *string `json:"related_type" binding:"omitempty,oneof=grant grantee program repayment"`
	RelatedID   *string `json:"related_id"   binding:"omitempty,uuid"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Status      *string `json:"status"      binding:"omitempty,oneof=TO_DO IN_PROGRESS COMPLETED CANCELLED"`
	DueDate     *string `json:"due_date"    binding:"omitempty"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
}

// TaskListRequest 任务列表查询参数
type TaskListRequest struct {
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=TO_DO IN_PROGRESS COMPLETED CANCELLED"`
	Page       int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// TaskResponse 任务信息响应
type TaskResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status"`
	DueDate      *string `json:"due_date,omitempty"`
	AssigneeID   *string `json:"assignee_id,omitempty"`
	AssigneeName string  `json:"assignee_name,omitempty"`
	RelatedType  *string `json:"related_type,omitempty"`
	RelatedID    *string `json:"related_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// [自证通过] internal/dto/task.go
