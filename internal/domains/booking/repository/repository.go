package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	availabilityModel "cleanbook/internal/domains/availability/model"
	"cleanbook/internal/domains/booking/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const constraintPaymentID = "uq_bookings_payment_id"

var (
	// ErrSlotTaken reports that another claim won the slot first.
	ErrSlotTaken = errors.New("slot already claimed")
	// ErrPaymentUsed reports that the payment is already attached to a booking.
	ErrPaymentUsed = errors.New("payment already attached to a booking")
)

var unbookedClause = "NOT EXISTS (SELECT 1 FROM " + model.TableName + " b" +
	" WHERE b." + model.FieldAdminID + " = " + availabilityModel.TimeTableName + "." + availabilityModel.FieldAdminID +
	" AND b." + model.FieldDate + " = " + availabilityModel.TimeTableName + "." + availabilityModel.FieldDate +
	" AND b." + model.FieldTimeLabel + " = " + availabilityModel.TimeTableName + "." + availabilityModel.FieldTimeLabel + ")"

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	DeleteAffected(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	Details(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error)
	CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Candidates(ctx context.Context, date, timeLabel string) ([]string, error)
	Claim(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details gRepo.Repository[model.Detail]
	times   gRepo.Repository[availabilityModel.Time]
	slots   gRepo.Repository[availabilityModel.Slot]
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.Detail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
		times:      gRepo.NewRepository[availabilityModel.Time](availabilityModel.TimeEntityName, availabilityModel.TimeTableName, availabilityModel.FieldAdminID, db, otel),
		slots:      gRepo.NewRepository[availabilityModel.Slot](availabilityModel.SlotEntityName, availabilityModel.TimeTableName, availabilityModel.FieldAdminID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) Details(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter) //nolint:wrapcheck
}

// Candidates lists the admins, lowest id first, that still hold the label open
// on date and have no booking on it.
func (r *repositoryImpl) Candidates(ctx context.Context, date, timeLabel string) (res []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Candidates")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: availabilityModel.FieldDate, Operator: gDto.FilterOperatorEq, Value: date, Table: availabilityModel.TimeTableName},
			gDto.Filter{Field: availabilityModel.FieldTimeLabel, Operator: gDto.FilterOperatorEq, Value: timeLabel, Table: availabilityModel.TimeTableName},
			gDto.Filter{ArgName: "admin_role", Field: userModel.FieldRole, Operator: gDto.FilterOperatorEq, Value: constant.RoleAdmin, Table: userModel.TableName},
			gDto.Filter{Operator: gDto.FilterPlainQuery, Value: unbookedClause},
		},
	}

	params := gDto.QueryParams{
		SortBy:  availabilityModel.TimeTableName + "." + availabilityModel.FieldAdminID,
		SortDir: gDto.SortDirAsc,
	}

	slots, err := r.slots.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate admins: %w", err)
	}

	res = make([]string, 0, len(slots))
	for _, slot := range slots {
		res = append(res, slot.AdminID)
	}

	return res, nil
}

// Claim removes the open label from the assigned admin and inserts the booking
// in one transaction. Losing a race in either step yields ErrSlotTaken; a
// payment id that another booking took in the meantime yields ErrPaymentUsed.
func (r *repositoryImpl) Claim(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Claim")
	defer scope.End()
	defer scope.TraceIfError(err)

	slotFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: availabilityModel.FieldAdminID, Operator: gDto.FilterOperatorEq, Value: booking.AdminID, Table: availabilityModel.TimeTableName},
			gDto.Filter{Field: availabilityModel.FieldDate, Operator: gDto.FilterOperatorEq, Value: booking.Date, Table: availabilityModel.TimeTableName},
			gDto.Filter{Field: availabilityModel.FieldTimeLabel, Operator: gDto.FilterOperatorEq, Value: booking.TimeLabel, Table: availabilityModel.TimeTableName},
		},
	}

	err = r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		removed, err := r.times.DeleteAffectedTx(ctx, sqltx, slotFilter)
		if err != nil {
			return err
		}

		if removed == 0 {
			return ErrSlotTaken
		}

		return r.InsertTx(ctx, sqltx, booking)
	})

	var pqErr *pq.Error

	switch {
	case err == nil, errors.Is(err, ErrSlotTaken):
		return err
	case errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation:
		if pqErr.Constraint == constraintPaymentID {
			return ErrPaymentUsed
		}

		return ErrSlotTaken
	}

	log.Error().Err(err).Str("admin_id", booking.AdminID).Msg("failed to claim slot")

	return fmt.Errorf("failed to claim slot: %w", err)
}
