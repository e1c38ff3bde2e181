package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/availability/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	Dates(ctx context.Context, adminID string) ([]model.Date, error)
	Times(ctx context.Context, adminID string) ([]model.Time, error)
	Slots(ctx context.Context) ([]model.Slot, error)
	Merge(ctx context.Context, adminID string, entries []model.Entry, now time.Time) error
	DeleteDate(ctx context.Context, adminID, date string) (bool, error)
}

type repositoryImpl struct {
	dates gRepo.Repository[model.Date]
	times gRepo.Repository[model.Time]
	slots gRepo.Repository[model.Slot]
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		dates: gRepo.NewRepository[model.Date](model.DateEntityName, model.DateTableName, model.FieldAdminID, db, otel),
		times: gRepo.NewRepository[model.Time](model.TimeEntityName, model.TimeTableName, model.FieldAdminID, db, otel),
		slots: gRepo.NewRepository[model.Slot](model.SlotEntityName, model.TimeTableName, model.FieldAdminID, db, otel),
		otel:  otel,
	}
}

func adminFilter(table, adminID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAdminID, Operator: gDto.FilterOperatorEq, Value: adminID, Table: table},
		},
	}
}

func (r *repositoryImpl) Dates(ctx context.Context, adminID string) (res []model.Date, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Dates")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.DateTableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	res, err = r.dates.GetAll(ctx, params, adminFilter(model.DateTableName, adminID))
	if err != nil {
		return nil, fmt.Errorf("failed to get availability dates: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Times(ctx context.Context, adminID string) (res []model.Time, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Times")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = r.times.GetAll(ctx, gDto.QueryParams{}, adminFilter(model.TimeTableName, adminID))
	if err != nil {
		return nil, fmt.Errorf("failed to get availability times: %w", err)
	}

	return res, nil
}

// Slots lists every open time of every account that still holds the admin role.
func (r *repositoryImpl) Slots(ctx context.Context) (res []model.Slot, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "admin_role",
				Field:    userModel.FieldRole,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.RoleAdmin,
				Table:    userModel.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TimeTableName + "." + model.FieldDate + ", " + model.TimeTableName + "." + model.FieldAdminID,
		SortDir: gDto.SortDirAsc,
	}

	res, err = r.slots.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability slots: %w", err)
	}

	return res, nil
}

// Merge unions entries into the admin's calendar in one transaction. Existing
// dates and labels are left untouched.
func (r *repositoryImpl) Merge(ctx context.Context, adminID string, entries []model.Entry, now time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Merge")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(entries) == 0 {
		return nil
	}

	dates := make([]model.Date, 0, len(entries))
	times := []model.Time{}

	for _, entry := range entries {
		dates = append(dates, model.Date{AdminID: adminID, Date: entry.Date, CreatedAt: now, CreatedBy: adminID})

		for _, label := range entry.Times {
			times = append(times, model.Time{AdminID: adminID, Date: entry.Date, TimeLabel: label, CreatedAt: now})
		}
	}

	err = r.dates.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := r.dates.InsertBulkIgnoreTx(ctx, sqltx, dates); err != nil {
			return err
		}

		return r.times.InsertBulkIgnoreTx(ctx, sqltx, times)
	})
	if err != nil {
		log.Error().Err(err).Str("admin_id", adminID).Msg("failed to merge availability")

		return fmt.Errorf("failed to merge availability: %w", err)
	}

	return nil
}

// DeleteDate removes a whole day; its times go with it through the foreign key.
// It reports whether the day existed.
func (r *repositoryImpl) DeleteDate(ctx context.Context, adminID, date string) (_ bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.DeleteDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := adminFilter(model.DateTableName, adminID)
	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: date, Table: model.DateTableName},
	)

	affected, err := r.dates.DeleteAffected(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete availability date: %w", err)
	}

	return affected > 0, nil
}
