package main

import (
	"context"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"

	"xostore-backend/config"
	"xostore-backend/controllers"
	"xostore-backend/routes"
	"xostore-backend/services"
	"xostore-backend/store/mongodb"
)

func main() {
	cfg := config.Load()

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Println("Error disconnecting from MongoDB:", err)
		}
	}()

	// Cloudinary opsional; tanpa kredensial, unggah gambar dilewati.
	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Invalid CLOUDINARY_URL:", err)
		}
	}

	stores := mongodb.New(client.Database(cfg.MongoDatabase))

	authService := services.NewAuthService(stores.Users, cfg.PasetoSecretKey)
	ctrl := &controllers.Controller{
		Auth:     authService,
		Products: services.NewProductService(stores.Products),
		Sales:    services.NewSaleService(stores.Products, stores.Sales),
		Stats:    services.NewStatsService(stores.Products, stores.Sales),
		Users:    services.NewUserService(stores.Users),
		Insights: services.NewInsightsService(cfg.GeminiAPIKey),
		Cld:      cld,
	}

	r := routes.Setup(ctrl, authService, cfg.Env)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
