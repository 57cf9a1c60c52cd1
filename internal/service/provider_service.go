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

var ErrProviderNotFound = errors.New("服务机构不存在")

// ProviderService 服务机构业务接口
type ProviderService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error)
	List(ctx context.Context, req *dto.ProviderListRequest) ([]dto.ProviderResponse, int64, error)
	Update(ctx context.Context, id string, operatorID string, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error)
	Delete(ctx context.Context, id string, operatorID string) error
}

type providerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProviderService 创建 ProviderService 实例
func NewProviderService(repo *repository.Repository, logger *zap.Logger) ProviderService {
	return &providerService{repo: repo, logger: logger}
}

func (s *providerService) Create(ctx context.Context, operatorID string, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	provider := &model.ServiceProvider{
		Name:        req.Name,
		Category:    req.Category,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Location:    req.Location,
		Rating:      req.Rating,
		Status:      model.ProviderStatusActive,
	}
	provider.CreatedBy = &operatorID

	if err := s.repo.Provider.Create(ctx, provider); err != nil {
		s.logger.Error("创建服务机构失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return toProviderResponse(provider), nil
}

func (s *providerService) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	provider, err := s.repo.Provider.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return toProviderResponse(provider), nil
}

func (s *providerService) List(ctx context.Context, req *dto.ProviderListRequest) ([]dto.ProviderResponse, int64, error) {
	providers, total, err := s.repo.Provider.List(ctx, req.Keyword, req.Category, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		s.logger.Error("查询服务机构列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProviderResponse, 0, len(providers))
	for i := range providers {
		result = append(result, *toProviderResponse(&providers[i]))
	}
	return result, total, nil
}

func (s *providerService) Update(ctx context.Context, id string, operatorID string, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := s.repo.Provider.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.Category != nil {
		provider.Category = *req.Category
	}
	if req.ContactName != nil {
		provider.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Email != nil {
		provider.Email = *req.Email
	}
	if req.Location != nil {
		provider.Location = *req.Location
	}
	if req.Rating != nil {
		provider.Rating = *req.Rating
	}
	if req.Status != nil {
		provider.Status = *req.Status
	}
	provider.UpdatedBy = &operatorID

	if err := s.repo.Provider.Update(ctx, provider); err != nil {
		s.logger.Error("更新服务机构失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProviderResponse(provider), nil
}

func (s *providerService) Delete(ctx context.Context, id string, operatorID string) error {
	if err := s.repo.Provider.Delete(ctx, id, operatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderNotFound
		}
		s.logger.Error("删除服务机构失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toProviderResponse(p *model.ServiceProvider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:          p.ProviderID,
		Name:        p.Name,
		Category:    p.Category,
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Location:    p.Location,
		Rating:      p.Rating,
		Status:      p.Status,
		CreatedAt:   fmtTimestamp(p.CreatedAt),
		UpdatedAt:   fmtTimestamp(p.UpdatedAt),
	}
}
