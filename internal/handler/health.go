package handler // declare the package name; contains HTTP handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Root answers GET / with a short banner so deploy checks and humans
// poking the base URL can see the service is up.
func Root(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"message": "Food Waste Saver Backend is running"})
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It
// returns a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
