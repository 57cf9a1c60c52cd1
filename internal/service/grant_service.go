package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// ── 资助金模块业务错误 ──

var (
	ErrGrantNotFound          = errors.New("资助金不存在")
	ErrInvalidStatusTransfer  = errors.New("非法的状态流转")
	ErrGrantTerminal          = errors.New("资助金已进入终态，不可修改")
	ErrScheduleOnUnapproved   = errors.New("未批准的资助金不能生成还款计划")
	ErrAmountLockedBySchedule = errors.New("已有还款计划时不能修改资助总额")
)

// 状态机：允许的流转边
var grantTransitions = map[string][]string{
	model.GrantStatusPending:   {model.GrantStatusApproved, model.GrantStatusCancelled},
	model.GrantStatusApproved:  {model.GrantStatusDisbursed, model.GrantStatusCancelled},
	model.GrantStatusDisbursed: {model.GrantStatusRepaying, model.GrantStatusCancelled},
	model.GrantStatusRepaying:  {model.GrantStatusCompleted, model.GrantStatusCancelled},
}

// GrantService 资助金业务接口
type GrantService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateGrantRequest) (*dto.GrantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.GrantResponse, error)
	List(ctx context.Context, req *dto.GrantListRequest) ([]dto.GrantResponse, int64, error)
	// Update 更新资助金；状态流转受状态机约束：
	//   - 流转到 DISBURSED 时记录拨付日期并写入一条台账拨付条目
	//   - 状态变化向负责人发送状态变更通知
	//   - Schedule 非 nil 时整体替换还款计划（手动模式）
	Update(ctx context.Context, id string, operatorID string, req *dto.UpdateGrantRequest) (*dto.GrantResponse, error)
	Delete(ctx context.Context, id string, operatorID string) error

	// GenerateSchedule 等额模式生成还款计划并整体替换既有计划
	GenerateSchedule(ctx context.Context, id string, operatorID string, req *dto.GenerateScheduleRequest) (*dto.GrantResponse, error)
	// ValidateSchedule 校验计划合计与资助总额的差额（提示性，不阻断保存）
	ValidateSchedule(ctx context.Context, id string) (*dto.ScheduleValidationResponse, error)
}

type grantService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewGrantService 创建 GrantService 实例
func NewGrantService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) GrantService {
	return &grantService{repo: repo, notification: notification, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *grantService) Create(ctx context.Context, operatorID string, req *dto.CreateGrantRequest) (*dto.GrantResponse, error) {
	// 受助人与项目必须真实存在
	if _, err := s.repo.Grantee.GetByID(ctx, req.GranteeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGranteeNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Program.GetByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if req.ProviderID != nil {
		if _, err := s.repo.Provider.GetByID(ctx, *req.ProviderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProviderNotFound
			}
			return nil, err
		}
	}

	grant := &model.Grant{
		GranteeID:  req.GranteeID,
		ProgramID:  req.ProgramID,
		ProviderID: req.ProviderID,
		ManagerID:  &operatorID, // 创建者默认为负责人，可后续改派
		Amount:     req.Amount,
		Status:     model.GrantStatusPending,
		Purpose:    req.Purpose,
	}
	grant.CreatedBy = &operatorID

	if err := s.repo.Grant.Create(ctx, grant); err != nil {
		s.logger.Error("创建资助金失败", zap.String("grantee_id", req.GranteeID), zap.Error(err))
		return nil, err
	}
	return toGrantResponse(grant), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *grantService) GetByID(ctx context.Context, id string) (*dto.GrantResponse, error) {
	grant, err := s.repo.Grant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}
	return toGrantResponse(grant), nil
}

func (s *grantService) List(ctx context.Context, req *dto.GrantListRequest) ([]dto.GrantResponse, int64, error) {
	grants, total, err := s.repo.Grant.List(ctx, &repository.GrantListFilter{
		GranteeID: req.GranteeID,
		ProgramID: req.ProgramID,
		Status:    req.Status,
		Offset:    (req.Page - 1) * req.PageSize,
		Limit:     req.PageSize,
	})
	if err != nil {
		s.logger.Error("查询资助金列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GrantResponse, 0, len(grants))
	for i := range grants {
		result = append(result, *toGrantResponse(&grants[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *grantService) Update(ctx context.Context, id string, operatorID string, req *dto.UpdateGrantRequest) (*dto.GrantResponse, error) {
	grant, err := s.repo.Grant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}
	if grant.Status == model.GrantStatusCompleted || grant.Status == model.GrantStatusCancelled {
		return nil, ErrGrantTerminal
	}

	oldStatus := grant.Status

	if req.ProviderID != nil {
		grant.ProviderID = req.ProviderID
	}
	if req.ManagerID != nil {
		grant.ManagerID = req.ManagerID
	}
	if req.Amount != nil && *req.Amount != grant.Amount {
		// 有计划在身时改总额会使计划合计失真，除非本次请求同时重排计划
		if len(grant.Schedule) > 0 && req.Schedule == nil {
			return nil, ErrAmountLockedBySchedule
		}
		grant.Amount = *req.Amount
	}
	if req.Purpose != nil {
		grant.Purpose = *req.Purpose
	}

	if req.Status != nil && *req.Status != grant.Status {
		if !isAllowedTransition(grant.Status, *req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransfer, grant.Status, *req.Status)
		}
		grant.Status = *req.Status

		if grant.Status == model.GrantStatusDisbursed && grant.DisbursedAt == nil {
			disbursedAt := time.Now()
			if req.DisbursedAt != nil {
				parsed, err := parseDate(*req.DisbursedAt)
				if err != nil {
					return nil, err
				}
				disbursedAt = parsed
			}
			grant.DisbursedAt = &disbursedAt
		}
	}

	// 手动模式：非 nil 的 Schedule 整体替换既有计划
	if req.Schedule != nil {
		schedule, err := installmentsFromItems(req.Schedule)
		if err != nil {
			return nil, err
		}
		grant.Schedule = schedule
	}

	grant.UpdatedBy = &operatorID
	if err := s.repo.Grant.Update(ctx, grant); err != nil {
		s.logger.Error("更新资助金失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 拨付入账与状态通知失败不回滚已完成的更新
	if oldStatus != grant.Status {
		if grant.Status == model.GrantStatusDisbursed {
			s.recordDisbursement(ctx, grant, operatorID)
		}
		if grant.ManagerID != nil && *grant.ManagerID != operatorID {
			if _, err := s.notification.SendGrantStatusUpdate(ctx, *grant.ManagerID, grant, oldStatus); err != nil {
				s.logger.Warn("发送资助金状态通知失败", zap.String("grant_id", id), zap.Error(err))
			}
		}
	}

	return toGrantResponse(grant), nil
}

func (s *grantService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Grant.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrantNotFound
		}
		s.logger.Error("删除资助金失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 还款计划 ──────────────────────

func (s *grantService) GenerateSchedule(ctx context.Context, id string, operatorID string, req *dto.GenerateScheduleRequest) (*dto.GrantResponse, error) {
	grant, err := s.repo.Grant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}
	if grant.Status == model.GrantStatusCompleted || grant.Status == model.GrantStatusCancelled {
		return nil, ErrGrantTerminal
	}
	if grant.Status == model.GrantStatusPending {
		return nil, ErrScheduleOnUnapproved
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	installments, err := GenerateEqualInstallments(grant.Amount, req.NumberOfInstallments, startDate, req.IntervalMonths)
	if err != nil {
		return nil, err
	}

	// 重新生成即整体替换，不保留旧计划的任何分期
	grant.Schedule = installments
	grant.UpdatedBy = &operatorID

	if err := s.repo.Grant.Update(ctx, grant); err != nil {
		s.logger.Error("保存还款计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toGrantResponse(grant), nil
}

func (s *grantService) ValidateSchedule(ctx context.Context, id string) (*dto.ScheduleValidationResponse, error) {
	grant, err := s.repo.Grant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}

	scheduled := grant.Schedule.Total()
	return &dto.ScheduleValidationResponse{
		TotalAmount:       grant.Amount,
		ScheduledAmount:   scheduled,
		UnscheduledAmount: grant.Amount - scheduled,
	}, nil
}

// ── 内部辅助方法 ──

func isAllowedTransition(from, to string) bool {
	for _, next := range grantTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// recordDisbursement 拨付时写入台账流出条目
func (s *grantService) recordDisbursement(ctx context.Context, grant *model.Grant, operatorID string) {
	entry := &model.LedgerEntry{
		GrantID:     &grant.GrantID,
		Type:        model.LedgerTypeDisbursement,
		Amount:      grant.Amount,
		EntryDate:   *grant.DisbursedAt,
		Description: fmt.Sprintf("资助金拨付：%s", grant.GrantID),
	}
	entry.CreatedBy = &operatorID

	if err := s.repo.Ledger.Create(ctx, entry); err != nil {
		s.logger.Error("写入拨付台账失败", zap.String("grant_id", grant.GrantID), zap.Error(err))
	}
}

// installmentsFromItems 将请求分期转换为存储模型；id 缺省时生成
func installmentsFromItems(items []dto.InstallmentItem) (model.InstallmentList, error) {
	result := make(model.InstallmentList, 0, len(items))
	for _, item := range items {
		dueDate, err := parseDate(item.DueDate)
		if err != nil {
			return nil, err
		}
		paidDate, err := parseDatePtr(item.PaidDate)
		if err != nil {
			return nil, err
		}

		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		status := item.Status
		if status == "" {
			status = model.InstallmentStatusPending
		}

		result = append(result, model.Installment{
			ID:         id,
			DueDate:    dueDate,
			Amount:     item.Amount,
			Status:     status,
			PaidAmount: item.PaidAmount,
			PaidDate:   paidDate,
		})
	}
	return result, nil
}

func toGrantResponse(g *model.Grant) *dto.GrantResponse {
	resp := &dto.GrantResponse{
		ID:          g.GrantID,
		GranteeID:   g.GranteeID,
		ProgramID:   g.ProgramID,
		ProviderID:  g.ProviderID,
		ManagerID:   g.ManagerID,
		Amount:      g.Amount,
		Status:      g.Status,
		Purpose:     g.Purpose,
		DisbursedAt: fmtDatePtr(g.DisbursedAt),
		CreatedAt:   fmtTimestamp(g.CreatedAt),
		UpdatedAt:   fmtTimestamp(g.UpdatedAt),
	}
	if g.Grantee != nil {
		resp.GranteeName = g.Grantee.Name
	}
	if g.Program != nil {
		resp.ProgramName = g.Program.Name
	}

	for _, inst := range g.Schedule {
		item := dto.InstallmentItem{
			ID:         inst.ID,
			DueDate:    fmtDate(inst.DueDate),
			Amount:     inst.Amount,
			Status:     inst.Status,
			PaidAmount: inst.PaidAmount,
			PaidDate:   fmtDatePtr(inst.PaidDate),
		}
		resp.Schedule = append(resp.Schedule, item)
	}
	return resp
}
