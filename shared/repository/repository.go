// Package repository is the generic sqlx store every domain repository embeds.
//
// Columns come from the model's db tags. A `table` tag reads the field from a
// joined table, and a `column` tag selects that table's column under the db
// tag as alias. Only fields owned by the model's own table are written on
// insert. A model that needs a join declares it through GetJoinQuery.
package repository

import (
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/shared/constant"
	"cleanbook/shared/dto"
	"cleanbook/shared/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("refusing to run without a filter")

type joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) String() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type Repository[T any] struct {
	db       *postgres.Connection
	otel     otel.Otel
	table    string
	entity   string
	key      string
	join     string
	columns  []column
	writable []string
}

func NewRepository[T any](entityName, tableName, keyColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, writable := columnsOf(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:       db,
		otel:     otl,
		table:    tableName,
		entity:   entityName,
		key:      keyColumn,
		join:     join,
		columns:  columns,
		writable: writable,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// read prepares query against the read pool and hands the statement to fn.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, query string, fn func(stmt *sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	return fn(stmt)
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return "WHERE " + clause, args
}

func (repo *Repository[T]) selectList(only ...string) string {
	list := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) && !slices.Contains(only, col.alias) {
			continue
		}

		list = append(list, col.String())
	}

	return strings.Join(list, ", ")
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.writable))
	for i, col := range repo.writable {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.writable, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.InsertTx(ctx, nil, model)
}

// InsertTx inserts inside sqltx, or on the write pool when sqltx is nil.
func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.writer(sqltx).NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// InsertBulkIgnoreTx inserts rows and skips those that hit a unique key.
func (repo *Repository[T]) InsertBulkIgnoreTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.scope(ctx, "InsertBulkIgnore")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	query := repo.insertQuery() + " ON CONFLICT DO NOTHING"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	scope.SetAttribute("rows", len(models))

	if _, err := repo.writer(sqltx).NamedExecContext(ctx, query, models); err != nil {
		return repo.fail(scope, "bulk insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	err = repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &exist, args); err != nil {
			return repo.fail(scope, "check existence", err)
		}

		return nil
	})

	return exist, err
}

// Get returns the first matching row, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model T, err error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.where(filter)
	query := strings.Join(compact("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where), " ")

	err = repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		err := stmt.GetContext(ctx, &model, args)
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return repo.fail(scope, "get data", err)
	})

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.where(filter)
	query := strings.Join(compact(
		"SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, where,
		ordering(params), pagination(params, args),
	), " ")

	err = repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.SelectContext(ctx, &models, args); err != nil {
			return repo.fail(scope, "get all data", err)
		}

		return nil
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.where(filter)
	query := strings.Join(compact(
		fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.key, repo.table), repo.join, where,
	), " ")

	err = repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &count, args); err != nil {
			return repo.fail(scope, "count data", err)
		}

		return nil
	})

	return count, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	_, err := repo.DeleteAffectedTx(ctx, nil, filter)

	return err
}

// DeleteAffected deletes matching rows and reports how many were removed.
func (repo *Repository[T]) DeleteAffected(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	return repo.DeleteAffectedTx(ctx, nil, filter)
}

func (repo *Repository[T]) DeleteAffectedTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.writer(sqltx).NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "delete data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	return affected, nil
}

// Update sets the given columns on every matching row.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, col+" = :"+col)
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, fields)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

// Transaction runs fn inside a write transaction, committing only when fn succeeds.
func (repo *Repository[T]) Transaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error {
	ctx, scope := repo.scope(ctx, "Transaction")
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	if err = fn(sqltx); err != nil {
		if rbErr := sqltx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		scope.TraceError(err)

		return err
	}

	if err = sqltx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}

func (repo *Repository[T]) writer(sqltx *sqlx.Tx) execer {
	if sqltx == nil {
		return repo.db.Write
	}

	return sqltx
}

func ordering(params dto.QueryParams) string {
	if params.SortBy == "" || params.SortDir == "" {
		return ""
	}

	return "ORDER BY " + params.SortBy + " " + params.SortDir
}

// pagination adds the limit and offset arguments it references to args.
func pagination(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return "LIMIT :limit OFFSET :offset"
}

func compact(parts ...string) []string {
	return slices.DeleteFunc(parts, func(part string) bool { return part == "" })
}

func columnsOf(table string, typ reflect.Type) (columns []column, writable []string) {
	for field := range structFields(typ) {
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedWritable := columnsOf(table, field.Type)
			columns = append(columns, embedded...)
			writable = append(writable, embeddedWritable...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			writable = append(writable, name)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: name})

			continue
		}

		columns = append(columns, column{name: name, table: owner})
	}

	return columns, writable
}

func structFields(typ reflect.Type) func(yield func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range typ.NumField() {
			if !yield(typ.Field(i)) {
				return
			}
		}
	}
}
