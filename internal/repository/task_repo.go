package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// openTaskStatuses 参与到期/逾期提醒的任务状态
var openTaskStatuses = []string{model.TaskStatusToDo, model.TaskStatusInProgress}

// TaskListFilter 任务列表过滤条件
type TaskListFilter struct {
	AssigneeID string
	Status     string
	Offset     int
	Limit      int
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, filter *TaskListFilter) ([]model.Task, int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string, deletedBy string) error

	// ListDueBetween 返回指定用户在 [from, to] 窗口内到期的未完结任务
	// 仅含 due_date 非空、状态为 TO_DO/IN_PROGRESS 的任务
	ListDueBetween(ctx context.Context, assigneeID string, from, to time.Time) ([]model.Task, error)
	// ListOverdue 返回 due_date 严格早于 before、已指派且未完结的任务
	ListOverdue(ctx context.Context, before time.Time) ([]model.Task, error)
	// ListOpenWithDueDate 返回所有带截止时间的未完结任务（日历导出用）
	ListOpenWithDueDate(ctx context.Context) ([]model.Task, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) List(ctx context.Context, filter *TaskListFilter) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.AssigneeID != "" {
		db = db.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Assignee").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("due_date ASC NULLS LAST, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *taskRepo) ListDueBetween(ctx context.Context, assigneeID string, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id = ?", assigneeID).
		Where("status IN ?", openTaskStatuses).
		Where("due_date IS NOT NULL").
		Where("due_date BETWEEN ? AND ?", from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListOverdue(ctx context.Context, before time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id IS NOT NULL").
		Where("status IN ?", openTaskStatuses).
		Where("due_date IS NOT NULL").
		Where("due_date < ?", before).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListOpenWithDueDate(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("status IN ?", openTaskStatuses).
		Where("due_date IS NOT NULL").
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}
