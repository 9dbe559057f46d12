package main

import (
	"log"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	"github.com/garagego/api/mailingservices"
	"github.com/garagego/api/realtime"
	"github.com/garagego/api/server"
	"github.com/garagego/api/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	garageRepo := db.NewGarageRepo(gormDB)
	partRepo := db.NewSparePartRepo(gormDB)
	reviewRepo := db.NewReviewRepo(gormDB)
	chatRepo := db.NewChatRepo(gormDB)

	hub := realtime.NewHub()

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	garageService := services.NewGarageService(garageRepo, conf)
	partService := services.NewSparePartService(partRepo, conf)
	reviewService := services.NewReviewService(reviewRepo, garageRepo, partRepo, conf)
	chatService := services.NewChatService(chatRepo, hub, conf)
	threadService := services.NewThreadService(chatService, hub)
	mediaService, err := services.NewMediaService(conf)
	if err != nil {
		log.Fatalf("error initializing media service: %v", err)
	}

	s := &server.Server{
		Config:           conf,
		AuthRepository:   authRepo,
		AuthService:      authService,
		GarageService:    garageService,
		SparePartService: partService,
		ReviewService:    reviewService,
		ChatService:      chatService,
		ThreadService:    threadService,
		MediaService:     mediaService,
		Hub:              hub,
	}

	s.Start()
}
