package shared

import (
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	"cleanbook/shared/dto"
	"cleanbook/shared/timezone"
	"context"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// CalculateTotalPage is the number of pages needed for total rows. An empty
// result still has one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns the set db-tagged fields of a struct, or a pointer to
// one, into an update map stamped with the modifying actor.
func TransformFields(data any, actorID string) map[string]any {
	value := reflect.Indirect(reflect.ValueOf(data))
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorID,
	}

	for i := range value.NumField() {
		column := value.Type().Field(i).Tag.Get("db")
		if column == "" || column == "-" || value.Field(i).IsZero() {
			continue
		}

		fields[column] = value.Field(i).Interface()
	}

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache prefix with its discriminating parts.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// InvalidateCaches removes every key stored under prefix. Failures are only logged.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
