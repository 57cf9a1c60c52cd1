package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

var ErrLedgerEntryNotFound = errors.New("台账条目不存在")

// LedgerService 资金台账业务接口
//
// 拨付与还款条目通常由资助金/还款流程自动写入；
// 手工入口主要用于 ADJUSTMENT 类调整条目
type LedgerService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LedgerEntryResponse, error)
	List(ctx context.Context, req *dto.LedgerListRequest) ([]dto.LedgerEntryResponse, int64, error)
	// Summary 按类型汇总期间内的金额，计算资金池净流量
	Summary(ctx context.Context, from, to string) (*dto.LedgerSummaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type ledgerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLedgerService 创建 LedgerService 实例
func NewLedgerService(repo *repository.Repository, logger *zap.Logger) LedgerService {
	return &ledgerService{repo: repo, logger: logger}
}

func (s *ledgerService) Create(ctx context.Context, operatorID string, req *dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	if req.GrantID != nil {
		if _, err := s.repo.Grant.GetByID(ctx, *req.GrantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGrantNotFound
			}
			return nil, err
		}
	}

	entry := &model.LedgerEntry{
		GrantID:     req.GrantID,
		Type:        req.Type,
		Amount:      req.Amount,
		EntryDate:   entryDate,
		Description: req.Description,
	}
	entry.CreatedBy = &operatorID

	if err := s.repo.Ledger.Create(ctx, entry); err != nil {
		s.logger.Error("创建台账条目失败", zap.String("type", req.Type), zap.Error(err))
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

func (s *ledgerService) GetByID(ctx context.Context, id string) (*dto.LedgerEntryResponse, error) {
	entry, err := s.repo.Ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLedgerEntryNotFound
		}
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

func (s *ledgerService) List(ctx context.Context, req *dto.LedgerListRequest) ([]dto.LedgerEntryResponse, int64, error) {
	from, to, err := parsePeriod(req.From, req.To)
	if err != nil {
		return nil, 0, err
	}

	entries, total, err := s.repo.Ledger.List(ctx, &repository.LedgerListFilter{
		GrantID: req.GrantID,
		Type:    req.Type,
		From:    from,
		To:      to,
		Offset:  (req.Page - 1) * req.PageSize,
		Limit:   req.PageSize,
	})
	if err != nil {
		s.logger.Error("查询台账列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toLedgerEntryResponse(&entries[i]))
	}
	return result, total, nil
}

func (s *ledgerService) Summary(ctx context.Context, fromStr, toStr string) (*dto.LedgerSummaryResponse, error) {
	from, to, err := parsePeriod(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.Ledger.SummarizeByType(ctx, from, to)
	if err != nil {
		s.logger.Error("台账汇总失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.LedgerSummaryResponse{}
	for _, item := range summaries {
		switch item.Type {
		case model.LedgerTypeDisbursement:
			resp.Disbursed = item.Total
		case model.LedgerTypeRepayment:
			resp.Repaid = item.Total
		case model.LedgerTypeAdjustment:
			resp.Adjusted = item.Total
		}
	}
	resp.Balance = resp.Repaid + resp.Adjusted - resp.Disbursed
	return resp, nil
}

func (s *ledgerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Ledger.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLedgerEntryNotFound
		}
		s.logger.Error("删除台账条目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// parsePeriod 期间参数均可缺省；to 取当日结束
func parsePeriod(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := parseDate(fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if toStr != "" {
		t, err := parseDate(toStr)
		if err != nil {
			return nil, nil, err
		}
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		to = &end
	}
	return from, to, nil
}

func toLedgerEntryResponse(e *model.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:          e.EntryID,
		GrantID:     e.GrantID,
		Type:        e.Type,
		Amount:      e.Amount,
		EntryDate:   fmtDate(e.EntryDate),
		Description: e.Description,
		CreatedAt:   fmtTimestamp(e.CreatedAt),
	}
}
