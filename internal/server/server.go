package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/strongslime/atelier/internal/catalog"
	"github.com/strongslime/atelier/internal/config"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log      *zap.Logger
	engine   *gin.Engine
	catalog  *catalog.Holder
	sessions sessiondomain.Service
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Engine   *gin.Engine
	Catalog  *catalog.Holder
	Sessions sessiondomain.Service
}

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewServer(p Params) *Server {
	s := &Server{
		log:      p.Log.Named("server"),
		engine:   p.Engine,
		catalog:  p.Catalog,
		sessions: p.Sessions,
	}
	s.RegisterAPIRoutes()
	return s
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/catalog", s.GetCatalog)

	api.POST("/sessions", s.CreateSession)
	api.GET("/sessions/:id", s.GetSession)
	api.DELETE("/sessions/:id", s.DeleteSession)
	api.POST("/sessions/:id/actions", s.DispatchAction)
	api.POST("/sessions/:id/files", s.UploadFiles)
	api.DELETE("/sessions/:id/files/:handle", s.RemoveFile)
	api.GET("/sessions/:id/summary", s.GetSummary)
	api.GET("/sessions/:id/export", s.ExportOrder)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {}),
	fx.Invoke(run),
)
