package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/config"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// SweepResult 单次批处理扫描的统计结果
type SweepResult struct {
	Scanned int // 候选条目数
	Sent    int // 实际发出的通知数
	Skipped int // 因偏好关闭或去重窗口内已发而跳过的条目数
	Failed  int // 单条失败数（不中断整次扫描）
}

// ReminderService 提醒批处理接口
//
// 三类扫描共用同一套约束：
//   - 单条失败只计入 Failed，不中断整次扫描
//   - 去重按（接收人, 关联对象, 通知类型）在回看窗口内查询判定
//   - 偏好闸门：到期与还款扫描只迭代开启了对应站内提醒的用户，
//     逾期扫描由 NotificationService 的发送函数执行同一闸门
type ReminderService interface {
	// CheckAndSendTaskReminders 扫描即将到期的任务并发送到期提醒；
	// 每个用户的提前量取自其通知偏好，受全局扫描窗口上限约束
	CheckAndSendTaskReminders(ctx context.Context) (*SweepResult, error)
	// SendOverdueTaskReminders 扫描已逾期的未完成任务并发送逾期提醒
	SendOverdueTaskReminders(ctx context.Context) (*SweepResult, error)
	// SendRepaymentReminders 扫描还款中资助金的分期计划，
	// 对窗口内到期与已逾期的分期向负责人发送还款提醒
	SendRepaymentReminders(ctx context.Context) (*SweepResult, error)
}

type reminderService struct {
	cfg          *config.ReminderConfig
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(cfg *config.ReminderConfig, repo *repository.Repository, notification NotificationService, logger *zap.Logger) ReminderService {
	return &reminderService{
		cfg:          cfg,
		repo:         repo,
		notification: notification,
		logger:       logger,
	}
}

// ────────────────────── 任务到期提醒 ──────────────────────

func (s *reminderService) CheckAndSendTaskReminders(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	result := &SweepResult{}

	// 先按用户遍历：提前量是用户级偏好，窗口随之逐用户计算
	settings, err := s.repo.NotificationSetting.ListTaskReminderEnabled(ctx)
	if err != nil {
		s.logger.Error("查询任务提醒订阅用户失败", zap.Error(err))
		return nil, err
	}

	dedupSince := now.Add(-time.Duration(s.cfg.DedupWindowHours) * time.Hour)

	for i := range settings {
		setting := &settings[i]

		leadHours := setting.ReminderLeadTime
		if leadHours <= 0 || leadHours > s.cfg.LookaheadHours {
			leadHours = s.cfg.LookaheadHours
		}
		windowEnd := now.Add(time.Duration(leadHours) * time.Hour)

		tasks, err := s.repo.Task.ListDueBetween(ctx, setting.UserID, now, windowEnd)
		if err != nil {
			s.logger.Error("查询用户到期任务失败",
				zap.String("user_id", setting.UserID), zap.Error(err))
			result.Failed++
			continue
		}

		for j := range tasks {
			task := &tasks[j]
			result.Scanned++

			sent, err := s.sendTaskReminderOnce(ctx, setting.UserID, task, dedupSince)
			if err != nil {
				result.Failed++
				continue
			}
			if sent {
				result.Sent++
			} else {
				result.Skipped++
			}
		}
	}

	s.logSweep("task_due", result)
	return result, nil
}

func (s *reminderService) SendOverdueTaskReminders(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	result := &SweepResult{}

	tasks, err := s.repo.Task.ListOverdue(ctx, now)
	if err != nil {
		s.logger.Error("查询逾期任务失败", zap.Error(err))
		return nil, err
	}

	dedupSince := now.Add(-time.Duration(s.cfg.DedupWindowHours) * time.Hour)

	for i := range tasks {
		task := &tasks[i]
		if task.AssigneeID == nil {
			continue
		}
		result.Scanned++

		sent, err := s.sendTaskReminderOnce(ctx, *task.AssigneeID, task, dedupSince)
		if err != nil {
			result.Failed++
			continue
		}
		if sent {
			result.Sent++
		} else {
			result.Skipped++
		}
	}

	s.logSweep("task_overdue", result)
	return result, nil
}

// sendTaskReminderOnce 对单个（用户, 任务）执行去重检查并发送提醒。
// 返回是否实际发出；偏好关闭或窗口内已发时返回 (false, nil)
func (s *reminderService) sendTaskReminderOnce(ctx context.Context, userID string, task *model.Task, dedupSince time.Time) (bool, error) {
	recent, err := s.repo.Notification.CountRecentTaskNotifications(
		ctx, userID, task.TaskID, model.NotificationTypeTaskReminder, dedupSince)
	if err != nil {
		s.logger.Error("提醒去重查询失败",
			zap.String("user_id", userID), zap.String("task_id", task.TaskID), zap.Error(err))
		return false, err
	}
	if recent > 0 {
		return false, nil
	}

	notification, err := s.notification.SendTaskReminder(ctx, userID, task)
	if err != nil {
		s.logger.Error("发送任务提醒失败",
			zap.String("user_id", userID), zap.String("task_id", task.TaskID), zap.Error(err))
		return false, err
	}
	return notification != nil, nil
}

// ────────────────────── 还款提醒 ──────────────────────

func (s *reminderService) SendRepaymentReminders(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	windowEnd := now.Add(time.Duration(s.cfg.LookaheadHours) * time.Hour)
	dedupSince := now.Add(-time.Duration(s.cfg.DedupWindowHours) * time.Hour)
	result := &SweepResult{}

	// 与任务扫描同一迭代入口：只处理开启了站内还款提醒的用户
	settings, err := s.repo.NotificationSetting.ListRepaymentReminderEnabled(ctx)
	if err != nil {
		s.logger.Error("查询还款提醒订阅用户失败", zap.Error(err))
		return nil, err
	}
	enabled := make(map[string]struct{}, len(settings))
	for i := range settings {
		enabled[settings[i].UserID] = struct{}{}
	}

	grants, err := s.repo.Grant.ListRepayingWithSchedule(ctx)
	if err != nil {
		s.logger.Error("查询还款中资助金失败", zap.Error(err))
		return nil, err
	}

	for i := range grants {
		grant := &grants[i]
		if grant.ManagerID == nil {
			continue
		}
		recipientID := *grant.ManagerID
		if _, ok := enabled[recipientID]; !ok {
			continue
		}

		for j := range grant.Schedule {
			inst := &grant.Schedule[j]
			if inst.Status == model.InstallmentStatusPaid {
				continue
			}
			overdue := inst.DueDate.Before(now)
			if !overdue && inst.DueDate.After(windowEnd) {
				continue
			}
			result.Scanned++

			sent, err := s.sendRepaymentReminderOnce(ctx, recipientID, grant, inst, overdue, dedupSince)
			if err != nil {
				result.Failed++
				continue
			}
			if sent {
				result.Sent++
			} else {
				result.Skipped++
			}
		}
	}

	s.logSweep("repayment", result)
	return result, nil
}

func (s *reminderService) sendRepaymentReminderOnce(ctx context.Context, recipientID string, grant *model.Grant, inst *model.Installment, overdue bool, dedupSince time.Time) (bool, error) {
	notifType := model.NotificationTypeRepaymentDue
	if overdue {
		notifType = model.NotificationTypeRepaymentOverdue
	}

	relatedType := "installment"
	recent, err := s.repo.Notification.CountRecentRelatedNotifications(
		ctx, recipientID, relatedType, inst.ID, notifType, dedupSince)
	if err != nil {
		s.logger.Error("还款提醒去重查询失败",
			zap.String("grant_id", grant.GrantID), zap.String("installment_id", inst.ID), zap.Error(err))
		return false, err
	}
	if recent > 0 {
		return false, nil
	}

	granteeName := ""
	if grant.Grantee != nil {
		granteeName = grant.Grantee.Name
	}

	outstanding := inst.Amount
	if inst.PaidAmount != nil {
		outstanding -= *inst.PaidAmount
	}
	title := "还款到期提醒"
	message := fmt.Sprintf("受助人 %s 的分期还款（金额 %d 分）将于 %s 到期",
		granteeName, outstanding, fmtDate(inst.DueDate))
	if overdue {
		title = "还款逾期提醒"
		message = fmt.Sprintf("受助人 %s 的分期还款（金额 %d 分）已于 %s 逾期，请跟进",
			granteeName, outstanding, fmtDate(inst.DueDate))
	}

	notification, err := s.notification.Create(ctx, &CreateNotificationParams{
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		RelatedType: &relatedType,
		RelatedID:   &inst.ID,
	})
	if err != nil {
		s.logger.Error("发送还款提醒失败",
			zap.String("grant_id", grant.GrantID), zap.String("installment_id", inst.ID), zap.Error(err))
		return false, err
	}
	return notification != nil, nil
}

func (s *reminderService) logSweep(kind string, r *SweepResult) {
	s.logger.Info("提醒批处理完成",
		zap.String("kind", kind),
		zap.Int("scanned", r.Scanned),
		zap.Int("sent", r.Sent),
		zap.Int("skipped", r.Skipped),
		zap.Int("failed", r.Failed),
	)
}
