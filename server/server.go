package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	"github.com/garagego/api/realtime"
	"github.com/garagego/api/services"
)

type Server struct {
	Config           *config.Config
	AuthRepository   db.AuthRepository
	AuthService      services.AuthService
	GarageService    services.GarageService
	SparePartService services.SparePartService
	ReviewService    services.ReviewService
	ChatService      services.ChatService
	ThreadService    services.ThreadService
	MediaService     services.MediaService
	Hub              *realtime.Hub
}

// Start brings the router up and blocks until an interrupt, then drains
// in-flight requests before exiting
func (s *Server) Start() {
	r := s.setupRouter()

	addr := fmt.Sprintf(":%d", s.Config.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("server started on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}
