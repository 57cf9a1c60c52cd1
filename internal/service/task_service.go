package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound   = errors.New("任务不存在")
	ErrInvalidDueDate = errors.New("到期时间格式无效")
)

// TaskService 任务业务接口
type TaskService interface {
	// Create 创建任务；指定了执行人且非本人时发送任务分配通知
	Create(ctx context.Context, operatorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TaskResponse, error)
	List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error)
	// Update 更新任务；改派执行人触发分配通知，流转到 COMPLETED 时通知执行人
	Update(ctx context.Context, id string, operatorID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id string, operatorID string) error

	// ExportCalendar 将用户的未完结且有到期时间的任务导出为 iCalendar 文本
	ExportCalendar(ctx context.Context, assigneeID string) (string, error)
}

type taskService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, notification: notification, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, operatorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	dueDate, err := parseDueDatePtr(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatusToDo,
		DueDate:     dueDate,
		AssigneeID:  req.AssigneeID,
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
	}
	task.CreatedBy = &operatorID

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	// 通知失败不影响任务创建结果
	if task.AssigneeID != nil && *task.AssigneeID != operatorID {
		if _, err := s.notification.SendTaskAssigned(ctx, *task.AssigneeID, operatorID, task); err != nil {
			s.logger.Warn("发送任务分配通知失败", zap.String("task_id", task.TaskID), zap.Error(err))
		}
	}

	return toTaskResponse(task), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *taskService) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error) {
	tasks, total, err := s.repo.Task.List(ctx, &repository.TaskListFilter{
		AssigneeID: req.AssigneeID,
		Status:     req.Status,
		Offset:     (req.Page - 1) * req.PageSize,
		Limit:      req.PageSize,
	})
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, id string, operatorID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := ""
	if task.AssigneeID != nil {
		oldAssignee = *task.AssigneeID
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &dueDate
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	task.UpdatedBy = &operatorID

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 改派：通知新执行人
	if task.AssigneeID != nil && *task.AssigneeID != oldAssignee && *task.AssigneeID != operatorID {
		if _, err := s.notification.SendTaskAssigned(ctx, *task.AssigneeID, operatorID, task); err != nil {
			s.logger.Warn("发送任务分配通知失败", zap.String("task_id", id), zap.Error(err))
		}
	}

	// 完成：通知执行人（操作者本人不自我通知）
	if oldStatus != model.TaskStatusCompleted && task.Status == model.TaskStatusCompleted &&
		task.AssigneeID != nil && *task.AssigneeID != operatorID {
		if _, err := s.notification.SendTaskCompleted(ctx, *task.AssigneeID, operatorID, task); err != nil {
			s.logger.Warn("发送任务完成通知失败", zap.String("task_id", id), zap.Error(err))
		}
	}

	return toTaskResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Task.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("删除任务失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ExportCalendar ──────────────────────

func (s *taskService) ExportCalendar(ctx context.Context, assigneeID string) (string, error) {
	tasks, err := s.repo.Task.ListOpenWithDueDate(ctx)
	if err != nil {
		s.logger.Error("查询待导出任务失败", zap.String("assignee_id", assigneeID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Yathashakti//Task Export//CN")

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if task.AssigneeID == nil || *task.AssigneeID != assigneeID {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("task-%s@yathashakti", task.TaskID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(*task.DueDate)
		event.SetEndAt(task.DueDate.Add(time.Hour))
		event.SetSummary(task.Title)
		if task.Description != "" {
			event.SetDescription(task.Description)
		}
	}

	return cal.Serialize(), nil
}

// ── 内部辅助方法 ──

// parseDueDate 到期时间同时接受日期与完整时间戳两种写法
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDueDate
}

func parseDueDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDueDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toTaskResponse(t *model.Task) *dto.TaskResponse {
	var dueDate *string
	if t.DueDate != nil {
		v := fmtTimestamp(*t.DueDate)
		dueDate = &v
	}

	resp := &dto.TaskResponse{
		ID:          t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     dueDate,
		AssigneeID:  t.AssigneeID,
		RelatedType: t.RelatedType,
		RelatedID:   t.RelatedID,
		CreatedAt:   fmtTimestamp(t.CreatedAt),
		UpdatedAt:   fmtTimestamp(t.UpdatedAt),
	}
	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.Name
	}
	return resp
}
