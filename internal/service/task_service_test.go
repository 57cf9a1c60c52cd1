package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

func setupTaskService() (TaskService, *testRepos) {
	repo, mocks := newTestRepos()
	notificationSvc := NewNotificationService(repo, zap.NewNop())
	svc := NewTaskService(repo, notificationSvc, zap.NewNop())
	return svc, mocks
}

func TestTaskCreate_AssignedNotification(t *testing.T) {
	svc, mocks := setupTaskService()
	mocks.user.users["actor-1"] = &model.User{UserID: "actor-1", Name: "王五"}

	assignee := "user-2"
	task, err := svc.Create(context.Background(), "actor-1", &dto.CreateTaskRequest{
		Title:      "走访受助人",
		AssigneeID: &assignee,
	})
	if err != nil {
		t.Fatalf("创建任务应成功: %v", err)
	}
	if task.Status != model.TaskStatusToDo {
		t.Errorf("新任务应为 TO_DO，实际=%s", task.Status)
	}
	if mocks.notification.countByType("user-2", model.NotificationTypeTaskAssigned) != 1 {
		t.Error("指派他人应发送分配通知")
	}
}

func TestTaskCreate_SelfAssignNoNotification(t *testing.T) {
	svc, mocks := setupTaskService()

	assignee := "actor-1"
	if _, err := svc.Create(context.Background(), "actor-1", &dto.CreateTaskRequest{
		Title:      "自己提醒自己",
		AssigneeID: &assignee,
	}); err != nil {
		t.Fatalf("创建任务应成功: %v", err)
	}
	if mocks.notification.countByType("actor-1", model.NotificationTypeTaskAssigned) != 0 {
		t.Error("指派给自己不应发通知")
	}
}

func TestTaskUpdate_CompletionNotifiesAssignee(t *testing.T) {
	svc, mocks := setupTaskService()
	mocks.user.users["actor-2"] = &model.User{UserID: "actor-2", Name: "赵六"}

	assignee := "user-1"
	task, _ := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:      "核对台账",
		AssigneeID: &assignee,
	})

	// 他人把任务标记为完成
	completed := model.TaskStatusCompleted
	if _, err := svc.Update(context.Background(), task.ID, "actor-2", &dto.UpdateTaskRequest{Status: &completed}); err != nil {
		t.Fatalf("更新任务应成功: %v", err)
	}
	if mocks.notification.countByType("user-1", model.NotificationTypeTaskCompleted) != 1 {
		t.Error("完成任务应通知执行人")
	}
}

func TestTaskUpdate_ReassignNotifiesNewAssignee(t *testing.T) {
	svc, mocks := setupTaskService()

	oldAssignee := "user-1"
	task, _ := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:      "整理材料",
		AssigneeID: &oldAssignee,
	})

	newAssignee := "user-2"
	if _, err := svc.Update(context.Background(), task.ID, "user-1", &dto.UpdateTaskRequest{AssigneeID: &newAssignee}); err != nil {
		t.Fatalf("改派应成功: %v", err)
	}
	if mocks.notification.countByType("user-2", model.NotificationTypeTaskAssigned) != 1 {
		t.Error("改派应通知新执行人")
	}
}

func TestTaskDueDate_AcceptsDateAndTimestamp(t *testing.T) {
	svc, _ := setupTaskService()

	dateOnly := "2026-12-01"
	task, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:   "日期写法",
		DueDate: &dateOnly,
	})
	if err != nil {
		t.Fatalf("日期写法应被接受: %v", err)
	}
	if task.DueDate == nil {
		t.Fatal("到期时间不应为空")
	}

	full := "2026-12-01T09:30:00Z"
	if _, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:   "时间戳写法",
		DueDate: &full,
	}); err != nil {
		t.Fatalf("时间戳写法应被接受: %v", err)
	}

	bad := "01/12/2026"
	if _, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:   "非法写法",
		DueDate: &bad,
	}); err == nil {
		t.Error("非法时间写法应报错")
	}
}

func TestExportCalendar_OnlyOwnOpenTasks(t *testing.T) {
	svc, mocks := setupTaskService()

	due := time.Now().Add(48 * time.Hour)
	mine := "user-1"
	other := "user-2"
	mocks.task.tasks["t1"] = &model.Task{TaskID: "t1", Title: "我的任务", Status: model.TaskStatusToDo, DueDate: &due, AssigneeID: &mine}
	mocks.task.tasks["t2"] = &model.Task{TaskID: "t2", Title: "别人的任务", Status: model.TaskStatusToDo, DueDate: &due, AssigneeID: &other}
	mocks.task.tasks["t3"] = &model.Task{TaskID: "t3", Title: "完结任务", Status: model.TaskStatusCompleted, DueDate: &due, AssigneeID: &mine}

	ical, err := svc.ExportCalendar(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !contains(ical, "BEGIN:VCALENDAR") {
		t.Error("导出内容应为 iCalendar 格式")
	}
	if !contains(ical, "我的任务") {
		t.Error("应包含本人未完结任务")
	}
	if contains(ical, "别人的任务") {
		t.Error("不应包含他人任务")
	}
	if contains(ical, "完结任务") {
		t.Error("不应包含已完结任务")
	}
}
