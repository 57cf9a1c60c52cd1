package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// ── 还款模块业务错误 ──

var (
	ErrRepaymentNotFound   = errors.New("还款记录不存在")
	ErrInstallmentNotFound = errors.New("分期不存在")
	ErrInstallmentSettled  = errors.New("该分期已结清")
	ErrGrantNotRepayable   = errors.New("资助金当前状态不接受还款")
)

// RepaymentService 还款业务接口
type RepaymentService interface {
	// Create 登记一次还款：
	//   - 定位对应分期并更新其已还金额与状态（结清/部分还款）
	//   - 全部分期结清时资助金流转为 COMPLETED
	//   - 写入一条台账还款条目
	Create(ctx context.Context, operatorID string, req *dto.CreateRepaymentRequest) (*dto.RepaymentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RepaymentResponse, error)
	ListByGrant(ctx context.Context, grantID string) ([]dto.RepaymentResponse, error)
	List(ctx context.Context, req *dto.RepaymentListRequest) ([]dto.RepaymentResponse, int64, error)
	Delete(ctx context.Context, id string, operatorID string) error
}

type repaymentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRepaymentService 创建 RepaymentService 实例
func NewRepaymentService(repo *repository.Repository, logger *zap.Logger) RepaymentService {
	return &repaymentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *repaymentService) Create(ctx context.Context, operatorID string, req *dto.CreateRepaymentRequest) (*dto.RepaymentResponse, error) {
	grant, err := s.repo.Grant.GetByID(ctx, req.GrantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}
	if grant.Status != model.GrantStatusDisbursed && grant.Status != model.GrantStatusRepaying {
		return nil, ErrGrantNotRepayable
	}

	// 定位目标分期
	idx := -1
	for i := range grant.Schedule {
		if grant.Schedule[i].ID == req.InstallmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrInstallmentNotFound
	}
	inst := &grant.Schedule[idx]
	if inst.Status == model.InstallmentStatusPaid {
		return nil, ErrInstallmentSettled
	}

	paidAt, err := parseDate(req.PaidAt)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = model.RepaymentMethodCash
	}

	repayment := &model.Repayment{
		GrantID:       req.GrantID,
		InstallmentID: req.InstallmentID,
		Amount:        req.Amount,
		Method:        method,
		PaidAt:        paidAt,
		Note:          req.Note,
	}
	repayment.CreatedBy = &operatorID

	if err := s.repo.Repayment.Create(ctx, repayment); err != nil {
		s.logger.Error("登记还款失败", zap.String("grant_id", req.GrantID), zap.Error(err))
		return nil, err
	}

	// 累加已还金额，按差额判定分期状态
	var alreadyPaid int64
	if inst.PaidAmount != nil {
		alreadyPaid = *inst.PaidAmount
	}
	paid := alreadyPaid + req.Amount
	inst.PaidAmount = &paid
	inst.PaidDate = &paidAt
	if paid >= inst.Amount {
		inst.Status = model.InstallmentStatusPaid
	} else {
		inst.Status = model.InstallmentStatusPartiallyPaid
	}

	// 首笔还款后资助金进入还款中；全部结清则完成
	if grant.Status == model.GrantStatusDisbursed {
		grant.Status = model.GrantStatusRepaying
	}
	if allSettled(grant.Schedule) {
		grant.Status = model.GrantStatusCompleted
	}
	grant.UpdatedBy = &operatorID

	if err := s.repo.Grant.Update(ctx, grant); err != nil {
		s.logger.Error("回写分期状态失败",
			zap.String("grant_id", req.GrantID), zap.String("installment_id", req.InstallmentID), zap.Error(err))
		return nil, err
	}

	// 台账入账失败不回滚业务主流程
	entry := &model.LedgerEntry{
		GrantID:     &grant.GrantID,
		Type:        model.LedgerTypeRepayment,
		Amount:      req.Amount,
		EntryDate:   paidAt,
		Description: fmt.Sprintf("还款入账：%s 分期 %s", grant.GrantID, req.InstallmentID),
	}
	entry.CreatedBy = &operatorID
	if err := s.repo.Ledger.Create(ctx, entry); err != nil {
		s.logger.Error("写入还款台账失败", zap.String("grant_id", grant.GrantID), zap.Error(err))
	}

	return toRepaymentResponse(repayment), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *repaymentService) GetByID(ctx context.Context, id string) (*dto.RepaymentResponse, error) {
	repayment, err := s.repo.Repayment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepaymentNotFound
		}
		return nil, err
	}
	return toRepaymentResponse(repayment), nil
}

func (s *repaymentService) ListByGrant(ctx context.Context, grantID string) ([]dto.RepaymentResponse, error) {
	repayments, err := s.repo.Repayment.ListByGrant(ctx, grantID)
	if err != nil {
		s.logger.Error("查询还款记录失败", zap.String("grant_id", grantID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RepaymentResponse, 0, len(repayments))
	for i := range repayments {
		result = append(result, *toRepaymentResponse(&repayments[i]))
	}
	return result, nil
}

func (s *repaymentService) List(ctx context.Context, req *dto.RepaymentListRequest) ([]dto.RepaymentResponse, int64, error) {
	repayments, total, err := s.repo.Repayment.List(ctx, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		s.logger.Error("查询还款记录列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RepaymentResponse, 0, len(repayments))
	for i := range repayments {
		result = append(result, *toRepaymentResponse(&repayments[i]))
	}
	return result, total, nil
}

func (s *repaymentService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Repayment.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRepaymentNotFound
		}
		s.logger.Error("删除还款记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func allSettled(schedule model.InstallmentList) bool {
	if len(schedule) == 0 {
		return false
	}
	for _, inst := range schedule {
		if inst.Status != model.InstallmentStatusPaid {
			return false
		}
	}
	return true
}

func toRepaymentResponse(r *model.Repayment) *dto.RepaymentResponse {
	return &dto.RepaymentResponse{
		ID:            r.RepaymentID,
		GrantID:       r.GrantID,
		InstallmentID: r.InstallmentID,
		Amount:        r.Amount,
		Method:        r.Method,
		PaidAt:        fmtDate(r.PaidAt),
		Note:          r.Note,
		CreatedAt:     fmtTimestamp(r.CreatedAt),
	}
}
