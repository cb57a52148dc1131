package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/user"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// bindUserFilter reads the search, role, class and is_active query params.
// An unparsable is_active is ignored.
func bindUserFilter(ctx echo.Context) *user.QueryFilter {
	data := ctx.QueryParams()
	filter := &user.QueryFilter{
		Search: data.Get("search"),
		Roles:  data["role"],
		Class:  academic.ClassRank(data.Get("class")),
	}
	if val := data.Get("is_active"); val != "" {
		if isActive, err := strconv.ParseBool(val); err == nil {
			filter.IsActive = &isActive
		}
	}
	filter.Clean()
	return filter
}
