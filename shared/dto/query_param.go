package dto

import (
	"cleanbook/shared/constant"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries pagination and ordering. SortBy is a client hint; services
// map it onto a whitelisted column before it reaches SQL.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positive(values url.Values, key string) int {
	number, err := strconv.Atoi(values.Get(key))
	if err != nil || number < 1 {
		return 0
	}

	return number
}

// FromRequest reads page, limit, sort_by and sort_dir. Invalid values are ignored and
// limit is capped. With paginate set, a missing page or limit gets its default; without
// it an absent limit means every row.
func (q *QueryParams) FromRequest(r *http.Request, paginate bool) {
	values := r.URL.Query()

	q.Page = positive(values, constant.RequestParamPage)
	q.Limit = min(positive(values, constant.RequestParamLimit), constant.MaxValueLimit)
	q.SortBy = strings.TrimSpace(values.Get(constant.RequestParamSortBy))

	switch direction := strings.ToUpper(values.Get(constant.RequestParamSortDir)); direction {
	case SortDirAsc, SortDirDesc:
		q.SortDir = direction
	default:
		q.SortDir = ""
	}

	if !paginate {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}
