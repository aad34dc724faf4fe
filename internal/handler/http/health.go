// Package http provides HTTP handlers and middleware for the web application.
// It includes request handlers for recipes, saved recipes and cooking logs,
// health check endpoints, metrics collection, authentication, and various
// middleware components.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`            // "healthy" or "unhealthy"
	Message string `json:"message,omitempty"` // Optional status message
}

// HealthHandler handles health check endpoint requests.
// It performs database connectivity checks and returns detailed health status.
type HealthHandler struct {
	DB      *sql.DB
	Version string
}

// ServeHTTP ヘルスチェック
// @Summary      ヘルスチェック
// @Description  サービスとデータベースの稼働状況を返します
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse "healthy"
// @Failure      503 {object} HealthResponse "unhealthy"
// @Router       /healthz [get]
func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{},
		Version:   h.Version,
	}

	dbCheck := CheckStatus{Status: "healthy"}
	if h.DB == nil {
		dbCheck = CheckStatus{Status: "unhealthy", Message: "database not configured"}
	} else if err := h.DB.PingContext(ctx); err != nil {
		dbCheck = CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}
	resp.Checks["database"] = dbCheck

	code := http.StatusOK
	if dbCheck.Status != "healthy" {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("health: encode response: %v", err)
	}
}
