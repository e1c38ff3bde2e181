package service

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/availability/model"
	"cleanbook/internal/domains/availability/model/dto"
	"cleanbook/internal/domains/availability/repository"
	userModel "cleanbook/internal/domains/user/model"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/actor"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const msgAdminOnly = "only admins can manage availability"

type Availability interface {
	Set(ctx context.Context, caller actor.Actor, req dto.SetRequest) (dto.SetResponse, error)
	Update(ctx context.Context, caller actor.Actor, req dto.UpdateRequest) (dto.UpdateResponse, error)
	Delete(ctx context.Context, caller actor.Actor, req dto.DeleteRequest) (dto.DeleteResponse, error)
	GetAll(ctx context.Context) (dto.GetAllResponse, error)
	Mine(ctx context.Context, caller actor.Actor) (dto.MineResponse, error)
	AdminID(ctx context.Context) (dto.AdminIDResponse, error)
}

type serviceImpl struct {
	repo     repository.Availability
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Availability, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock) Availability {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
	}
}

// authorize confirms the caller is an admin both in the token and in storage.
func (s *serviceImpl) authorize(ctx context.Context, caller actor.Actor) error {
	if caller.IsAnonymous() {
		return failure.Unauthorized("authentication required")
	}

	if !caller.IsAdmin() {
		return failure.Forbidden(msgAdminOnly)
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(caller.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if user.ID == "" || !user.IsAdmin() {
		return failure.Forbidden(msgAdminOnly)
	}

	return nil
}

func (s *serviceImpl) entries(ctx context.Context, adminID string) ([]model.Entry, error) {
	dates, err := s.repo.Dates(ctx, adminID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability dates")

		return nil, fmt.Errorf("failed to get availability dates: %w", err)
	}

	times, err := s.repo.Times(ctx, adminID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability times")

		return nil, fmt.Errorf("failed to get availability times: %w", err)
	}

	return model.Assemble(dates, times), nil
}

func (s *serviceImpl) merge(ctx context.Context, adminID string, entries []model.Entry) error {
	if err := s.repo.Merge(ctx, adminID, entries, s.clock.Now()); err != nil {
		log.Error().Err(err).Msg("failed to merge availability")

		return fmt.Errorf("failed to merge availability: %w", err)
	}

	s.invalidate(ctx, adminID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, adminID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyAvailability)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyAvailabilityOf, adminID))
	}()
}

func (s *serviceImpl) Set(ctx context.Context, caller actor.Actor, req dto.SetRequest) (res dto.SetResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	incoming, err := req.Entries()
	if err != nil {
		return res, err
	}

	if err = s.authorize(ctx, caller); err != nil {
		return res, err
	}

	if err = s.merge(ctx, caller.ID, incoming); err != nil {
		return res, err
	}

	entries, err := s.entries(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	log.Info().Str("admin_id", caller.ID).Int("dates", len(incoming)).Msg("availability merged")

	return dto.SetResponse{
		Message:      "availability updated successfully",
		Availability: dto.EntriesFromModel(entries),
	}, nil
}

func (s *serviceImpl) Update(ctx context.Context, caller actor.Actor, req dto.UpdateRequest) (res dto.UpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, caller); err != nil {
		return res, err
	}

	entry := req.Entry()

	if err = s.merge(ctx, caller.ID, []model.Entry{entry}); err != nil {
		return res, err
	}

	entries, err := s.entries(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	updated, ok := model.Find(entries, entry.Date)
	if !ok {
		updated = entry
	}

	res.Message = "availability updated"
	res.Updated.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller actor.Actor, req dto.DeleteRequest) (res dto.DeleteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, caller); err != nil {
		return res, err
	}

	deleted, err := s.repo.DeleteDate(ctx, caller.ID, req.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete availability date")

		return res, fmt.Errorf("failed to delete availability date: %w", err)
	}

	if !deleted {
		return res, failure.NotFound(fmt.Sprintf("no availability found for %s", req.Date))
	}

	s.invalidate(ctx, caller.ID)

	entries, err := s.entries(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	return dto.DeleteResponse{
		Message:               fmt.Sprintf("availability for %s deleted", req.Date),
		RemainingAvailability: dto.EntriesFromModel(entries),
	}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetAllResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAvailability)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	if !cache.Miss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("availability cache unreadable, reading store")
	}

	slots, err := s.repo.Slots(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability slots")

		return res, fmt.Errorf("failed to get availability slots: %w", err)
	}

	res.Availability = dto.AggregateFromSlots(slots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context, caller actor.Actor) (res dto.MineResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Mine")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, caller); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAvailabilityOf, caller.ID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	entries, err := s.entries(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	res.Availability = dto.EntriesFromModel(entries)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admin availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AdminID(ctx context.Context) (res dto.AdminIDResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.AdminID")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.userRepo.FirstAdmin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == "" {
		return res, failure.NotFound("no admin found")
	}

	return dto.AdminIDResponse{AdminID: admin.ID, Email: admin.Email}, nil
}
