package handlers

import (
	"net/http"

	intconfig "toursbackend/internal/config"
	intdb "toursbackend/internal/db"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, gin.H{"status": "ok"}, "service is running")
}

// DBCheck pings the database and reports tables missing from the schema.
func DBCheck(c *gin.Context) {
	rid := middleware.GetRequestID(c)
	if err := intconfig.PingDB(c.Request.Context()); err != nil {
		utils.LogError(rid, "system", "db_check", err)
		RespondError(c, http.StatusInternalServerError, "database unavailable", nil)
		return
	}

	missing, err := intdb.MissingTables(c.Request.Context(), intconfig.DB, intdb.RequiredTables...)
	if err != nil {
		utils.LogError(rid, "system", "db_check", err)
		RespondError(c, http.StatusInternalServerError, "failed to inspect schema", nil)
		return
	}
	if len(missing) > 0 {
		RespondError(c, http.StatusInternalServerError, "database schema incomplete", map[string][]string{"missing_tables": missing})
		return
	}
	RespondSuccess(c, http.StatusOK, gin.H{"database": "ok", "tables": intdb.RequiredTables}, "database connection OK")
}
