package service

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/user/model"
	"cleanbook/internal/domains/user/model/dto"
	"cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/actor"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type User interface {
	Profile(ctx context.Context, caller actor.Actor) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, caller actor.Actor, req dto.UpdateProfileRequest) (dto.ProfileResponse, error)
	DeleteProfile(ctx context.Context, caller actor.Actor) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) getUser(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return user, failure.NotFound("user not found")
	}

	return user, nil
}

func (s *serviceImpl) Profile(ctx context.Context, caller actor.Actor) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyProfile, caller.ID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	user, err := s.getUser(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, caller actor.Actor, req dto.UpdateProfileRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return res, failure.Unauthorized("authentication required")
	}

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("no valid fields provided for update")
	}

	user, err := s.getUser(ctx, caller.ID)
	if err != nil {
		return res, err
	}

	update := req.ToUpdate()

	if update.Email != "" && update.Email != user.Email {
		taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorEq, Value: update.Email, Table: model.TableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check email availability")

			return res, fmt.Errorf("failed to check email availability: %w", err)
		}

		if taken {
			return res, failure.Conflict("email already registered")
		}
	}

	filter := shared.FilterByID(caller.ID, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, shared.TransformFields(update, caller.ID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	res.FromModel(update.ApplyTo(user))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyProfile, caller.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}

		if user.IsAdmin() {
			shared.InvalidateCaches(c, s.cache, constant.CacheKeyAvailability)
		}
	}()

	return res, nil
}

func (s *serviceImpl) DeleteProfile(ctx context.Context, caller actor.Actor) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return failure.Unauthorized("authentication required")
	}

	filter := shared.FilterByID(caller.ID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
			log.Warn().Str("user_id", caller.ID).Str("constraint", pqErr.Constraint).Msg("user still has assigned bookings")

			return failure.Conflict("account still has assigned bookings, remove them first")
		}

		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info().Str("user_id", caller.ID).Msg("user profile deleted")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyProfile, caller.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyUserBookings)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingsOnDate)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyAvailability)
	}()

	return nil
}
