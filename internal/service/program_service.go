package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

var (
	ErrProgramNotFound    = errors.New("项目不存在")
	ErrInvalidProgramDate = errors.New("项目结束日期不能早于开始日期")
)

// ProgramService 资助项目业务接口
type ProgramService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error)
	List(ctx context.Context, req *dto.ProgramListRequest) ([]dto.ProgramResponse, int64, error)
	// Update 更新项目；状态或预算变更时向项目负责人发送项目动态通知
	Update(ctx context.Context, id string, operatorID string, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error)
	Delete(ctx context.Context, id string, operatorID string) error
}

type programService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewProgramService 创建 ProgramService 实例
func NewProgramService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, notification: notification, logger: logger}
}

func (s *programService) Create(ctx context.Context, operatorID string, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, ErrInvalidProgramDate
	}

	program := &model.Program{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Status:       model.ProgramStatusPlanning,
		BudgetAmount: req.BudgetAmount,
		StartDate:    startDate,
		EndDate:      endDate,
		ManagerID:    req.ManagerID,
	}
	program.CreatedBy = &operatorID

	if err := s.repo.Program.Create(ctx, program); err != nil {
		s.logger.Error("创建项目失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return toProgramResponse(program), nil
}

func (s *programService) GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return toProgramResponse(program), nil
}

func (s *programService) List(ctx context.Context, req *dto.ProgramListRequest) ([]dto.ProgramResponse, int64, error) {
	programs, total, err := s.repo.Program.List(ctx, req.Status, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		result = append(result, *toProgramResponse(&programs[i]))
	}
	return result, total, nil
}

func (s *programService) Update(ctx context.Context, id string, operatorID string, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	notable := false // 状态或预算变化才值得打扰负责人

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.Category != nil {
		program.Category = *req.Category
	}
	if req.Status != nil && *req.Status != program.Status {
		program.Status = *req.Status
		notable = true
	}
	if req.BudgetAmount != nil && *req.BudgetAmount != program.BudgetAmount {
		program.BudgetAmount = *req.BudgetAmount
		notable = true
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		program.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		program.EndDate = &endDate
	}
	if program.StartDate != nil && program.EndDate != nil && program.EndDate.Before(*program.StartDate) {
		return nil, ErrInvalidProgramDate
	}
	if req.ManagerID != nil {
		program.ManagerID = req.ManagerID
	}
	program.UpdatedBy = &operatorID

	if err := s.repo.Program.Update(ctx, program); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 通知失败不回滚已完成的更新
	if notable && program.ManagerID != nil && *program.ManagerID != operatorID {
		if _, err := s.notification.SendProgramUpdate(ctx, *program.ManagerID, program); err != nil {
			s.logger.Warn("发送项目动态通知失败", zap.String("program_id", id), zap.Error(err))
		}
	}

	return toProgramResponse(program), nil
}

func (s *programService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Program.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		s.logger.Error("删除项目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toProgramResponse(p *model.Program) *dto.ProgramResponse {
	resp := &dto.ProgramResponse{
		ID:           p.ProgramID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Status:       p.Status,
		BudgetAmount: p.BudgetAmount,
		StartDate:    fmtDatePtr(p.StartDate),
		EndDate:      fmtDatePtr(p.EndDate),
		ManagerID:    p.ManagerID,
		CreatedAt:    fmtTimestamp(p.CreatedAt),
		UpdatedAt:    fmtTimestamp(p.UpdatedAt),
	}
	if p.Manager != nil {
		resp.ManagerName = p.Manager.Name
	}
	return resp
}
