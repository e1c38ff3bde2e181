package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
	"context"
	"fmt"
	"strings"
)

// User is the account store. Lookups that find nothing return a zero User and no error.
type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ByEmail(ctx context.Context, email string) (model.User, error)
	FirstAdmin(ctx context.Context) (model.User, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// EmailFilter matches an address case-insensitively, the way it is stored.
func EmailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    model.TableName,
			},
		},
	}
}

func (r *repositoryImpl) ByEmail(ctx context.Context, email string) (user model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.ByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.Get(ctx, EmailFilter(email)) //nolint:wrapcheck
}

// FirstAdmin returns the admin with the lowest id, the same order the slot
// allocator walks.
func (r *repositoryImpl) FirstAdmin(ctx context.Context) (user model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.FirstAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: constant.RoleAdmin, Table: model.TableName},
		},
	}

	admins, err := r.GetAll(ctx, params, filter, model.FieldID, model.FieldEmail)
	if err != nil {
		return user, fmt.Errorf("failed to get first admin: %w", err)
	}

	if len(admins) == 0 {
		return user, nil
	}

	return admins[0], nil
}
