package service

import (
	"cleanbook/config"
	"cleanbook/infras/jwt"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/auth/model/dto"
	userModel "cleanbook/internal/domains/user/model"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/actor"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/password"
	"cleanbook/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, caller actor.Actor, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	cache      cache.RedisCache
	clock      timezone.Clock
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, cache cache.RedisCache, clock timezone.Clock) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		cache:      cache,
		clock:      clock,
	}
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(constant.ContextKeyInternal).(bool)

	return internal
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Role == constant.RoleAdmin && !isInternal(ctx) {
		return res, failure.Forbidden("admin accounts can only be created by internal callers")
	}

	exists, err := s.userRepo.Exist(ctx, userRepo.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("user already exists")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword, s.clock.Now())

	if err = s.userRepo.Insert(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.BadRequestFromString("user already exists")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	if user.IsAdmin() {
		go func() {
			shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheKeyAvailability)
		}()
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return dto.RegisterResponse{
		ID:            user.ID,
		Message:       "user registered successfully",
		CleaningPrice: user.CleaningPrice,
	}, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(msgInvalidCredentials)
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(msgInvalidCredentials)
	}

	if password.NeedsRehash(user.Password) {
		s.rehash(ctx, user.ID, req.Password)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.Message = "login successful"
	res.User = dto.LoginUser{ID: user.ID, Email: user.Email, Role: user.Role}

	return res, nil
}

// rehash upgrades a hash made with an older bcrypt cost. Failing to do so
// does not fail the login.
func (s *serviceImpl) rehash(ctx context.Context, userID, plain string) {
	hashed, err := password.Hash(plain)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to rehash password")

		return
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)
	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashed}, userID)

	if err := s.userRepo.Update(ctx, fields, filter); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to store rehashed password")
	}
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, caller actor.Actor, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsAnonymous() {
		return failure.Unauthorized("authentication required")
	}

	filter := shared.FilterByID(caller.ID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, caller.ID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
