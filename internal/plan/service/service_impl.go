package service

import (
	"context"
	"strings"

	"github.com/TwinexTecnologia/bodybrothers/internal/billing"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	planrepo repository.Repository[plandomain.Plan]
}

func NewService(p ServiceParam) plandomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("plan.service"),
		genID: p.GenID,
		clock: p.Clock,

		planrepo: repository.ProvideStore[plandomain.Plan](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req plandomain.CreatePlanRequest) (*plandomain.Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, plandomain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, plandomain.ErrInvalidPrice
	}
	frequency, ok := billing.ParseFrequency(req.Frequency)
	if !ok {
		return nil, plandomain.ErrInvalidFrequency
	}
	if frequency != billing.FrequencyWeekly && (req.DueDay < 1 || req.DueDay > 31) {
		return nil, plandomain.ErrInvalidDueDay
	}

	now := s.clock.Now()
	plan := &plandomain.Plan{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Frequency:   string(frequency),
		DueDay:      req.DueDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.planrepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.log.Info("plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("frequency", plan.Frequency),
	)
	return plan, nil
}

func (s *Service) Update(ctx context.Context, req plandomain.UpdatePlanRequest) (*plandomain.Plan, error) {
	plan, err := s.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, plandomain.ErrInvalidName
		}
		plan.Name = name
	}
	if req.Description != nil {
		plan.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, plandomain.ErrInvalidPrice
		}
		plan.Price = *req.Price
	}
	if req.Frequency != nil {
		frequency, ok := billing.ParseFrequency(*req.Frequency)
		if !ok {
			return nil, plandomain.ErrInvalidFrequency
		}
		plan.Frequency = string(frequency)
	}
	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return nil, plandomain.ErrInvalidDueDay
		}
		plan.DueDay = *req.DueDay
	}

	plan.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) List(ctx context.Context, req plandomain.ListPlanRequest) ([]plandomain.Plan, error) {
	filter := &plandomain.Plan{}
	if req.ActiveOnly {
		filter.Active = true
	}

	rows, err := s.planrepo.Find(ctx, filter, option.WithOrder("name ASC"))
	if err != nil {
		return nil, err
	}

	plans := make([]plandomain.Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, *row)
	}
	return plans, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*plandomain.Plan, error) {
	planID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, plandomain.ErrNotFound
	}

	plan, err := s.planrepo.FindOne(ctx, &plandomain.Plan{ID: planID})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}
	return plan, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&plandomain.Plan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]any{"active": false, "updated_at": s.clock.Now()}).Error
}
