package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DebugHandler exposes development-only introspection endpoints. It talks to
// the pool directly because its queries cut across all owners — something no
// regular repository method is allowed to do. The router mounts it only when
// ENV=local.
type DebugHandler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDebugHandler(pool *pgxpool.Pool, logger *slog.Logger) *DebugHandler {
	return &DebugHandler{pool: pool, logger: logger.With("component", "debug_handler")}
}

// GET /debug/status
func (h *DebugHandler) Status(c *gin.Context) {
	state := "connected"
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		state = "disconnected"
	}

	stat := h.pool.Stat()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"database": gin.H{
			"state":        state,
			"totalConns":   stat.TotalConns(),
			"idleConns":    stat.IdleConns(),
			"maxConns":     stat.MaxConns(),
			"acquireCount": stat.AcquireCount(),
		},
	})
}

// GET /debug/users
func (h *DebugHandler) Users(c *gin.Context) {
	rows, err := h.pool.Query(c.Request.Context(),
		`SELECT id, email, name, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "debug users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer rows.Close()

	users := make([]gin.H, 0)
	for rows.Next() {
		var id, email, name string
		var createdAt time.Time
		if err := rows.Scan(&id, &email, &name, &createdAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		users = append(users, gin.H{"id": id, "email": email, "name": name, "createdAt": createdAt})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
}

// GET /debug/tasks
func (h *DebugHandler) Tasks(c *gin.Context) {
	rows, err := h.pool.Query(c.Request.Context(), `
		SELECT t.id, t.title, t.status, t.priority, t.created_at, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC`)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "debug tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer rows.Close()

	tasks := make([]gin.H, 0)
	for rows.Next() {
		var id, title, status, priority, owner string
		var createdAt time.Time
		if err := rows.Scan(&id, &title, &status, &priority, &createdAt, &owner); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		tasks = append(tasks, gin.H{
			"id": id, "title": title, "status": status,
			"priority": priority, "createdAt": createdAt, "owner": owner,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(tasks), "tasks": tasks})
}

// GET /debug/system
func (h *DebugHandler) System(c *gin.Context) {
	ctx := c.Request.Context()

	var userCount, taskCount int
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&taskCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	byStatus, err := h.groupCount(c, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return
	}
	byPriority, err := h.groupCount(c, `SELECT priority, COUNT(*) FROM tasks GROUP BY priority`)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"users":           userCount,
		"tasks":           taskCount,
		"tasksByStatus":   byStatus,
		"tasksByPriority": byPriority,
	})
}

// DELETE /debug/clear-all
func (h *DebugHandler) ClearAll(c *gin.Context) {
	ctx := c.Request.Context()

	var userCount, taskCount int
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&taskCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := h.pool.Exec(ctx, `TRUNCATE tasks, users`); err != nil {
		h.logger.ErrorContext(ctx, "debug clear all", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	h.logger.WarnContext(ctx, "debug clear all executed", "users", userCount, "tasks", taskCount)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All data cleared successfully",
		"deletedCounts": gin.H{
			"users": userCount,
			"tasks": taskCount,
		},
	})
}

func (h *DebugHandler) groupCount(c *gin.Context, query string) (map[string]int, error) {
	rows, err := h.pool.Query(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return nil, err
		}
		counts[key] = count
	}
	return counts, nil
}
