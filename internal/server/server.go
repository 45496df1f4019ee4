package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"luckyticket/internal/config"
	"luckyticket/internal/database"
	"luckyticket/internal/domain/image"
	"luckyticket/internal/domain/ticket"
	"luckyticket/internal/metrics"
	"luckyticket/internal/middleware"
	"luckyticket/internal/storage"
)

const healthTimeout = 2 * time.Second

// Deps are the wired collaborators. Cache is optional.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Store  storage.FileStore
	Cache  image.LookupCache
	Log    *logrus.Logger
}

// NewRouter builds the gin engine with every route and middleware installed.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(d.Config.Server.Mode)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.SecurityHeaders(),
		middleware.CORS(d.Config.CORS.AllowedOrigins),
		metrics.Middleware(),
	)

	var opts []image.Option
	if d.Cache != nil {
		opts = append(opts, image.WithCache(d.Cache))
	}
	imageService := image.NewService(image.NewRepository(d.DB), d.Store, d.Log, opts...)
	imageHandler := image.NewHandler(imageService, d.Store, d.Log, d.Config.Server.TrustProxy)
	ticketHandler := ticket.NewHandler(d.Log)

	r.GET("/health", healthHandler(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	image.RegisterBlobRoutes(r, imageHandler)

	api := r.Group(d.Config.Server.APIPrefix)
	{
		image.RegisterRoutes(api, imageHandler, middleware.BodyLimit(d.Config.MaxUploadBytes()))
		ticket.RegisterRoutes(api, ticketHandler)
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
