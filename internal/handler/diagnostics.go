package handler

import (
    "context"
    "database/sql"
    "net/http"
    "os"
    "time"

    "github.com/labstack/echo/v4"
)

// DiagnosticsHandler answers GET /test with a snapshot of the
// process's backing-store health: whether a database was configured,
// whether it answers a ping, and which tables exist.  The endpoint is
// intentionally unauthenticated and cheap; it exists so deploys to new
// environments can be checked with one curl.
type DiagnosticsHandler struct {
    DB *sql.DB // may be nil when the environment lacks a database configuration
}

// NewDiagnosticsHandler constructs a DiagnosticsHandler.  A nil DB is
// valid and reported as "not available".
func NewDiagnosticsHandler(db *sql.DB) *DiagnosticsHandler {
    return &DiagnosticsHandler{DB: db}
}

// Test handles GET /test.
func (h *DiagnosticsHandler) Test(c echo.Context) error {
    resp := echo.Map{
        "backend":           "running",
        "database":          "not available",
        "connection_status": "not connected",
        "database_url":      envStatus("DATABASE_URL"),
        "database_name":     envStatus("DATABASE_NAME"),
        "tables":            []string{},
    }
    if h.DB == nil {
        return c.JSON(http.StatusOK, resp)
    }

    ctx := c.Request().Context()
    pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
    defer pingCancel()
    if err := h.DB.PingContext(pingCtx); err != nil {
        resp["database"] = "available but unreachable: " + truncate(err.Error(), 50)
        return c.JSON(http.StatusOK, resp)
    }
    resp["database"] = "connected"
    resp["connection_status"] = "connected"

    rows, err := h.DB.QueryContext(ctx, "SHOW TABLES")
    if err != nil {
        resp["database"] = "connected but error: " + truncate(err.Error(), 50)
        return c.JSON(http.StatusOK, resp)
    }
    defer rows.Close()
    tables := []string{}
    for rows.Next() && len(tables) < 10 {
        var name string
        if err := rows.Scan(&name); err != nil {
            break
        }
        tables = append(tables, name)
    }
    resp["tables"] = tables
    return c.JSON(http.StatusOK, resp)
}

func envStatus(key string) string {
    if os.Getenv(key) != "" {
        return "set"
    }
    return "not set"
}

func truncate(s string, n int) string {
    if len(s) <= n {
        return s
    }
    return s[:n]
}
