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

var ErrGranteeNotFound = errors.New("受助人不存在")

// GranteeService 受助人业务接口
type GranteeService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateGranteeRequest) (*dto.GranteeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.GranteeResponse, error)
	List(ctx context.Context, req *dto.GranteeListRequest) ([]dto.GranteeResponse, int64, error)
	Update(ctx context.Context, id string, operatorID string, req *dto.UpdateGranteeRequest) (*dto.GranteeResponse, error)
	Delete(ctx context.Context, id string, operatorID string) error
}

type granteeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGranteeService 创建 GranteeService 实例
func NewGranteeService(repo *repository.Repository, logger *zap.Logger) GranteeService {
	return &granteeService{repo: repo, logger: logger}
}

func (s *granteeService) Create(ctx context.Context, operatorID string, req *dto.CreateGranteeRequest) (*dto.GranteeResponse, error) {
	grantee := &model.Grantee{
		Name:     req.Name,
		Gender:   req.Gender,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		Village:  req.Village,
		Address:  req.Address,
		Notes:    req.Notes,
		Status:   model.GranteeStatusActive,
	}
	grantee.CreatedBy = &operatorID

	if err := s.repo.Grantee.Create(ctx, grantee); err != nil {
		s.logger.Error("创建受助人失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return toGranteeResponse(grantee), nil
}

func (s *granteeService) GetByID(ctx context.Context, id string) (*dto.GranteeResponse, error) {
	grantee, err := s.repo.Grantee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGranteeNotFound
		}
		return nil, err
	}
	return toGranteeResponse(grantee), nil
}

func (s *granteeService) List(ctx context.Context, req *dto.GranteeListRequest) ([]dto.GranteeResponse, int64, error) {
	grantees, total, err := s.repo.Grantee.List(ctx, req.Keyword, req.Status, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		s.logger.Error("查询受助人列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GranteeResponse, 0, len(grantees))
	for i := range grantees {
		result = append(result, *toGranteeResponse(&grantees[i]))
	}
	return result, total, nil
}

func (s *granteeService) Update(ctx context.Context, id string, operatorID string, req *dto.UpdateGranteeRequest) (*dto.GranteeResponse, error) {
	grantee, err := s.repo.Grantee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGranteeNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		grantee.Name = *req.Name
	}
	if req.Gender != nil {
		grantee.Gender = *req.Gender
	}
	if req.Phone != nil {
		grantee.Phone = *req.Phone
	}
	if req.IDNumber != nil {
		grantee.IDNumber = *req.IDNumber
	}
	if req.Village != nil {
		grantee.Village = *req.Village
	}
	if req.Address != nil {
		grantee.Address = *req.Address
	}
	if req.Notes != nil {
		grantee.Notes = *req.Notes
	}
	if req.Status != nil {
		grantee.Status = *req.Status
	}
	grantee.UpdatedBy = &operatorID

	if err := s.repo.Grantee.Update(ctx, grantee); err != nil {
		s.logger.Error("更新受助人失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toGranteeResponse(grantee), nil
}

func (s *granteeService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Grantee.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGranteeNotFound
		}
		s.logger.Error("删除受助人失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toGranteeResponse(g *model.Grantee) *dto.GranteeResponse {
	return &dto.GranteeResponse{
		ID:        g.GranteeID,
		Name:      g.Name,
		Gender:    g.Gender,
		Phone:     g.Phone,
		IDNumber:  g.IDNumber,
		Village:   g.Village,
		Address:   g.Address,
		Notes:     g.Notes,
		Status:    g.Status,
		CreatedAt: fmtTimestamp(g.CreatedAt),
		UpdatedAt: fmtTimestamp(g.UpdatedAt),
	}
}
