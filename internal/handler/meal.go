package handler

import (
	"net/http"
	"strconv"
	"strings"

	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/repository"
	"daily-tiffin/internal/service"

	"github.com/labstack/echo/v4"
)

type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
	}
}

var reservedQueryParams = map[string]struct{}{
	"sort":  {},
	"page":  {},
	"limit": {},
}

// API field names to store columns. Anything not listed falls through to the
// repository whitelist and is rejected there.
var mealColumns = map[string]string{
	"name":        "name",
	"price":       "price",
	"category":    "category",
	"type":        "type",
	"isAvailable": "is_available",
	"createdAt":   "created_at",
}

func mealColumn(field string) string {
	if col, ok := mealColumns[field]; ok {
		return col
	}
	return field
}

// parseListQuery turns query params into a typed filter set. Bare params are
// equality checks; `price[gte]=100` style params carry an operator.
func parseListQuery(c echo.Context) repository.ListQuery {
	q := repository.ListQuery{}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if sort := c.QueryParam("sort"); sort != "" {
		fields := strings.Split(sort, ",")
		for i, field := range fields {
			desc := strings.HasPrefix(field, "-")
			col := mealColumn(strings.TrimPrefix(field, "-"))
			if desc {
				col = "-" + col
			}
			fields[i] = col
		}
		q.Sort = strings.Join(fields, ",")
	}

	for key, values := range c.QueryParams() {
		if _, reserved := reservedQueryParams[key]; reserved || len(values) == 0 {
			continue
		}

		field, op := key, repository.OpEq
		if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
			field, op = key[:i], repository.Op(key[i+1:len(key)-1])
		}

		var value interface{} = values[0]
		if op == repository.OpIn {
			value = strings.Split(values[0], ",")
		}

		q.Filters = append(q.Filters, repository.Filter{
			Field: mealColumn(field),
			Op:    op,
			Value: value,
		})
	}

	return q
}

func (h *MealHandler) ListMeals(c echo.Context) error {
	ctx := c.Request().Context()

	q := parseListQuery(c)
	meals, total, err := h.mealService.List(ctx, q)
	if err != nil {
		return err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	pagination := map[string]interface{}{}
	if int64(page*limit) < total {
		pagination["next"] = map[string]int{"page": page + 1, "limit": limit}
	}
	if page > 1 {
		pagination["prev"] = map[string]int{"page": page - 1, "limit": limit}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(meals),
		"pagination": pagination,
		"data":       meals,
	})
}

func (h *MealHandler) GetMeal(c echo.Context) error {
	ctx := c.Request().Context()

	meal, err := h.mealService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, meal)
}

func (h *MealHandler) CreateMeal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meal, err := h.mealService.Create(ctx, &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, meal)
}

func (h *MealHandler) UpdateMeal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meal, err := h.mealService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, meal)
}

func (h *MealHandler) DeleteMeal(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.mealService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]interface{}{})
}
