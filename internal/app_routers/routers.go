package approuters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Tunedeck/internal/auth"
	"Tunedeck/internal/configuration"
	"Tunedeck/internal/handler"
)

func StartServer(container *configuration.Container) {
	logger := container.Logger
	h := container.Hub

	socketServer := createSocketServer(container)
	appServer := createAppServer(container)

	serverErrors := make(chan error, 2)

	go func() {
		logger.Info("socket server starting", zap.String("addr", socketServer.Addr))
		if err := socketServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("socket server error: %w", err)
		}
	}()

	go func() {
		logger.Info("application server starting", zap.String("addr", appServer.Addr))
		if err := appServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("app server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("received signal, initiating graceful shutdown", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("stopping hub and closing all websocket connections")
	h.Stop()

	if err := socketServer.Shutdown(ctx); err != nil {
		logger.Error("socket server shutdown error", zap.Error(err))
	}
	if err := appServer.Shutdown(ctx); err != nil {
		logger.Error("app server shutdown error", zap.Error(err))
	}

	logger.Info("graceful shutdown complete")
}

// createSocketServer serves the realtime channel on its own port. The
// session token travels as a query parameter because browsers cannot set
// headers on websocket handshakes.
func createSocketServer(container *configuration.Container) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/socket", func(w http.ResponseWriter, r *http.Request) {
		userID, err := container.Provider.Verify(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		container.Hub.ServeWS(w, r, userID)
	})

	return &http.Server{
		Addr:        fmt.Sprintf(":%d", container.Config.SocketPort),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

func createAppServer(container *configuration.Container) *http.Server {
	if !container.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidations(); err != nil {
		container.Logger.Fatal("failed to register validations", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireUser := auth.RequireUser(container.Provider, container.Logger)
	requireAdmin := auth.RequireAdmin(container.Provider, container.Policy, container.Logger)

	AuthRouters(router, container)
	UserRouters(router, container, requireUser)
	SongRouters(router, container, requireUser, requireAdmin)
	AlbumRouters(router, container)
	AdminRouters(router, container, requireUser, requireAdmin)
	StatRouters(router, container, requireUser, requireAdmin)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", container.Config.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
