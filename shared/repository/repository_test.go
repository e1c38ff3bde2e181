package repository

import (
	"cleanbook/shared/dto"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type audit struct {
	CreatedAt time.Time `db:"created_at"`
}

type bookingRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Email     string `db:"email"      table:"users"`
	OwnerName string `db:"owner_name" table:"users" column:"first_name"`
	Ignored   string
	audit
}

func (bookingRow) GetJoinQuery() string {
	return "JOIN users ON users.id = bookings.user_id"
}

func newTestRepository() Repository[bookingRow] {
	return NewRepository[bookingRow]("booking", "bookings", "id", nil, nil)
}

func TestColumnsOf(t *testing.T) {
	columns, writable := columnsOf("bookings", reflect.TypeOf(bookingRow{}))

	assert.Equal(t, []column{
		{name: "id", table: "bookings"},
		{name: "user_id", table: "bookings"},
		{name: "email", table: "users"},
		{name: "first_name", table: "users", alias: "owner_name"},
		{name: "created_at", table: "bookings"},
	}, columns)
	assert.Equal(t, []string{"id", "user_id", "created_at"}, writable)
}

func TestNewRepository_Join(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t, "JOIN users ON users.id = bookings.user_id", repo.join)
}

func TestSelectList(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t,
		"bookings.id, bookings.user_id, users.email, users.first_name AS owner_name, bookings.created_at",
		repo.selectList(),
	)
	assert.Equal(t, "bookings.id, users.email", repo.selectList("id", "email"))
	assert.Equal(t, "users.first_name AS owner_name", repo.selectList("owner_name"))
}

func TestInsertQuery(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t,
		"INSERT INTO bookings (id, user_id, created_at) VALUES (:id, :user_id, :created_at)",
		repo.insertQuery(),
	)
}

func TestWhere(t *testing.T) {
	repo := newTestRepository()

	where, args := repo.where(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.where(dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "user_id", Operator: dto.FilterOperatorEq, Value: "user-1", Table: "bookings"},
		},
	})
	assert.Equal(t, "WHERE (bookings.user_id = :user_id)", where)
	assert.Equal(t, map[string]any{"user_id": "user-1"}, args)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		want     string
		wantArgs map[string]any
	}{
		{
			name:     "no limit",
			params:   dto.QueryParams{Page: 3},
			want:     "",
			wantArgs: map[string]any{},
		},
		{
			name:     "limit only",
			params:   dto.QueryParams{Limit: 1},
			want:     "LIMIT :limit",
			wantArgs: map[string]any{"limit": 1},
		},
		{
			name:     "page and limit",
			params:   dto.QueryParams{Page: 3, Limit: 20},
			want:     "LIMIT :limit OFFSET :offset",
			wantArgs: map[string]any{"limit": 20, "offset": 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			assert.Equal(t, tt.want, pagination(tt.params, args))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrdering(t *testing.T) {
	assert.Empty(t, ordering(dto.QueryParams{SortBy: "bookings.date"}))
	assert.Equal(t, "ORDER BY bookings.date DESC",
		ordering(dto.QueryParams{SortBy: "bookings.date", SortDir: dto.SortDirDesc}))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, []string{"SELECT", "id", "FROM", "bookings"}, compact("SELECT", "id", "FROM", "bookings", "", ""))
}
