package handler

import "github.com/labstack/echo/v4"

// All endpoints answer with the same envelope: {"success": true, "data": ...}.
func respond(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func respondList(c echo.Context, count int, data interface{}) error {
	return c.JSON(200, map[string]interface{}{
		"success": true,
		"count":   count,
		"data":    data,
	})
}
