package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// HealthController answers liveness probes.
type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Show handles GET /healthz: 200 when the database answers a ping, 503
// otherwise.
func (c *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	response.Success(w, map[string]interface{}{"status": "ok"})
}
