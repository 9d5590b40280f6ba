package handler

import (
	"log"
	"net/http"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arnavshah/group-planner-go/pkg/auth"
	"github.com/arnavshah/group-planner-go/pkg/config"
	"github.com/arnavshah/group-planner-go/pkg/database"
	"github.com/arnavshah/group-planner-go/pkg/handlers"
	"github.com/arnavshah/group-planner-go/pkg/logger"
	"github.com/arnavshah/group-planner-go/pkg/metrics"
)

var r *gin.Engine

func init() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}

	db, err := database.Open(cfg.DB, zl)
	if err != nil {
		zl.Fatal("could not open database", zap.Error(err))
	}
	if err := auth.EnsureAdminExists(db, cfg.Auth, zl); err != nil {
		zl.Error("could not ensure admin user", zap.Error(err))
	}

	rec, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		zl.Fatal("could not register metrics", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	h := handlers.NewHandler(db, auth.New(cfg.Auth), zl, rec, cfg.Planner)
	r = h.NewRouter(prometheus.DefaultGatherer)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
