package service_test

import (
	"cleanbook/config"
	"cleanbook/infras/otel/mocks"
	availabilityMocks "cleanbook/internal/domains/availability/mocks"
	"cleanbook/internal/domains/availability/model"
	"cleanbook/internal/domains/availability/model/dto"
	"cleanbook/internal/domains/availability/service"
	userMocks "cleanbook/internal/domains/user/mocks"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/actor"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errCacheMiss = errors.New("cache miss")
	admin        = actor.Actor{ID: "admin-1", Email: "kim@example.com", Role: constant.RoleAdmin}
	customer     = actor.Actor{ID: "user-1", Email: "jane@example.com", Role: constant.RoleUser}
	storedAdmin  = userModel.User{ID: "admin-1", FirstName: "Kim", LastName: "Lee", Role: constant.RoleAdmin}
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc   service.Availability
	repo  *availabilityMocks.MockAvailability
	users *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  availabilityMocks.NewMockAvailability(ctrl),
		users: userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.users, &config.Config{}, f.cache, mocks.NewOtel(), fixedClock{})

	return f
}

func setRequest(t *testing.T, raw string) dto.SetRequest {
	t.Helper()

	var req dto.SetRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	return req
}

func TestAvailabilityService_Set(t *testing.T) {
	tests := []struct {
		name      string
		caller    actor.Actor
		body      string
		setupMock func(f fixture)
		want      []dto.EntryResponse
		wantCode  int
	}{
		{
			name:   "merges normalized entries",
			caller: admin,
			body:   `{"availability": {"2025-07-04": ["2 PM", " 10 AM", "10 AM"]}}`,
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
				f.repo.EXPECT().Merge(gomock.Any(), "admin-1", []model.Entry{
					{Date: "2025-07-04", Times: []string{"10 AM", "2 PM"}},
				}, fixedClock{}.Now()).Return(nil)
				f.repo.EXPECT().Dates(gomock.Any(), "admin-1").Return([]model.Date{
					{AdminID: "admin-1", Date: "2025-07-09"},
					{AdminID: "admin-1", Date: "2025-07-04"},
				}, nil)
				f.repo.EXPECT().Times(gomock.Any(), "admin-1").Return([]model.Time{
					{AdminID: "admin-1", Date: "2025-07-04", TimeLabel: "2 PM"},
					{AdminID: "admin-1", Date: "2025-07-09", TimeLabel: "8 AM"},
					{AdminID: "admin-1", Date: "2025-07-04", TimeLabel: "10 AM"},
				}, nil)
			},
			want: []dto.EntryResponse{
				{Date: "2025-07-04", Times: []string{"10 AM", "2 PM"}},
				{Date: "2025-07-09", Times: []string{"8 AM"}},
			},
		},
		{
			name:      "rejects malformed date before touching storage",
			caller:    admin,
			body:      `{"availability": {"07/04/2025": ["10 AM"]}}`,
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "rejects non-array times",
			caller:    admin,
			body:      `{"availability": {"2025-07-04": "10 AM"}}`,
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "rejects missing availability object",
			caller:    admin,
			body:      `{}`,
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "customers are forbidden",
			caller:    customer,
			body:      `{"availability": {"2025-07-04": ["10 AM"]}}`,
			setupMock: func(f fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "demoted admin is forbidden",
			caller: admin,
			body:   `{"availability": {"2025-07-04": ["10 AM"]}}`,
			setupMock: func(f fixture) {
				demoted := storedAdmin
				demoted.Role = constant.RoleUser
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(demoted, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "merge failure is internal",
			caller: admin,
			body:   `{"availability": {"2025-07-04": ["10 AM"]}}`,
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
				f.repo.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Set(context.Background(), tt.caller, setRequest(t, tt.body))

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Availability)
		})
	}
}

func TestAvailabilityService_SetIsIdempotent(t *testing.T) {
	f := newFixture(t)

	var merged [][]model.Entry

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil).Times(2)
	f.repo.EXPECT().Merge(gomock.Any(), "admin-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, entries []model.Entry, _ time.Time) error {
			merged = append(merged, entries)

			return nil
		}).Times(2)
	f.repo.EXPECT().Dates(gomock.Any(), "admin-1").Return([]model.Date{{Date: "2025-06-01"}}, nil).Times(2)
	f.repo.EXPECT().Times(gomock.Any(), "admin-1").Return([]model.Time{{Date: "2025-06-01", TimeLabel: "9 AM"}}, nil).Times(2)

	body := `{"availability": {"2025-06-01": ["9 AM", "9 AM"]}}`

	first, err := f.svc.Set(context.Background(), admin, setRequest(t, body))
	require.NoError(t, err)

	second, err := f.svc.Set(context.Background(), admin, setRequest(t, body))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, merged, 2)
	assert.Equal(t, []model.Entry{{Date: "2025-06-01", Times: []string{"9 AM"}}}, merged[0])
	assert.Equal(t, merged[0], merged[1])
}

func TestAvailabilityService_Update(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
	f.repo.EXPECT().Merge(gomock.Any(), "admin-1", []model.Entry{
		{Date: "2025-07-05", Times: []string{"8 AM"}},
	}, gomock.Any()).Return(nil)
	f.repo.EXPECT().Dates(gomock.Any(), "admin-1").Return([]model.Date{{Date: "2025-07-04"}, {Date: "2025-07-05"}}, nil)
	f.repo.EXPECT().Times(gomock.Any(), "admin-1").Return([]model.Time{
		{Date: "2025-07-05", TimeLabel: "1 PM"},
		{Date: "2025-07-05", TimeLabel: "8 AM"},
		{Date: "2025-07-04", TimeLabel: "9 AM"},
	}, nil)

	res, err := f.svc.Update(context.Background(), admin, dto.UpdateRequest{Date: "2025-07-05", Times: []string{"8 AM "}})
	require.NoError(t, err)

	assert.Equal(t, "2025-07-05", res.Updated.Date)
	assert.Equal(t, []string{"8 AM", "1 PM"}, res.Updated.Times)
}

func TestAvailabilityService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		want      []dto.EntryResponse
		wantCode  int
	}{
		{
			name: "returns remaining availability",
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
				f.repo.EXPECT().DeleteDate(gomock.Any(), "admin-1", "2025-07-04").Return(true, nil)
				f.repo.EXPECT().Dates(gomock.Any(), "admin-1").Return([]model.Date{{Date: "2025-07-05"}}, nil)
				f.repo.EXPECT().Times(gomock.Any(), "admin-1").Return(nil, nil)
			},
			want: []dto.EntryResponse{{Date: "2025-07-05", Times: []string{}}},
		},
		{
			name: "missing date is not found",
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
				f.repo.EXPECT().DeleteDate(gomock.Any(), "admin-1", "2025-07-04").Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Delete(context.Background(), admin, dto.DeleteRequest{Date: "2025-07-04"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.RemainingAvailability)
		})
	}
}

func TestAvailabilityService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailability, gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Slots(gomock.Any()).Return([]model.Slot{
		{AdminID: "admin-1", Date: "2025-07-04", TimeLabel: "10 AM", AdminFirstName: "Kim", AdminLastName: "Lee"},
		{AdminID: "admin-2", Date: "2025-07-04", TimeLabel: "10 AM", AdminFirstName: "Sam", AdminLastName: "Ortiz"},
		{AdminID: "admin-1", Date: "2025-07-05", TimeLabel: "9 AM", AdminFirstName: "Kim", AdminLastName: "Lee"},
	}, nil)

	res, err := f.svc.GetAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.Aggregate{
		"2025-07-04": {
			"10 AM": {{AdminID: "admin-1", AdminName: "Kim Lee"}, {AdminID: "admin-2", AdminName: "Sam Ortiz"}},
		},
		"2025-07-05": {
			"9 AM": {{AdminID: "admin-1", AdminName: "Kim Lee"}},
		},
	}, res.Availability)
}

func TestAvailabilityService_GetAllCacheHit(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailability, gomock.Any()).Return(nil)

	_, err := f.svc.GetAll(context.Background())
	assert.NoError(t, err)
}

func TestAvailabilityService_Mine(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAdmin, nil)
	f.cache.EXPECT().Get(gomock.Any(), "availability:admin:admin-1", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Dates(gomock.Any(), "admin-1").Return([]model.Date{{Date: "2025-07-05"}, {Date: "2025-07-04"}}, nil)
	f.repo.EXPECT().Times(gomock.Any(), "admin-1").Return([]model.Time{{Date: "2025-07-04", TimeLabel: "9 AM"}}, nil)

	res, err := f.svc.Mine(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, []dto.EntryResponse{
		{Date: "2025-07-04", Times: []string{"9 AM"}},
		{Date: "2025-07-05", Times: []string{}},
	}, res.Availability)
}

func TestAvailabilityService_AdminID(t *testing.T) {
	tests := []struct {
		name     string
		admin    userModel.User
		want     dto.AdminIDResponse
		wantCode int
	}{
		{
			name:   "first admin",
			admin:  userModel.User{ID: "admin-1", Email: "kim@example.com"},
			want:   dto.AdminIDResponse{AdminID: "admin-1", Email: "kim@example.com"},
		},
		{
			name:     "no admin",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.users.EXPECT().FirstAdmin(gomock.Any()).Return(tt.admin, nil)

			res, err := f.svc.AdminID(context.Background())

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}
