package main

import (
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/cache"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/database"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/handlers"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/messaging"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/middleware"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/monitoring"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/utils"
)

func main() {
	var logger *zap.Logger
	var err error

	if os.Getenv("DEBUG") == "true" {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment variables")
		}
	} else {
		logger, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}
	defer logger.Sync()

	service.InitializeLogger(logger)
	handlers.InitializeLogger(logger)

	if err := utils.EnsureJWTReady(); err != nil {
		logger.Fatal("token keys misconfigured", zap.Error(err))
	}

	db, err := database.Connect()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}

	cacheStore, err := cache.NewBadgerCache(os.Getenv("CACHE_PATH"))
	if err != nil {
		logger.Fatal("cache store failed to open", zap.Error(err))
	}
	defer cacheStore.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	publisher, err := messaging.NewNATSPublisher(natsURL, nil)
	if err != nil {
		logger.Fatal("message publisher failed to connect", zap.Error(err))
	}
	defer publisher.Close()

	metrics := monitoring.NewMetrics()

	albumService := service.NewAlbumService(db, cacheStore)
	songService := service.NewSongService(db)
	userService := service.NewUserService(db)
	authenticationService := service.NewAuthenticationService(db)
	activityService := service.NewActivityService(db)
	collaborationService := service.NewCollaborationService(db)
	playlistService := service.NewPlaylistService(db, activityService, collaborationService)
	exportService := service.NewExportService(publisher)

	albumHandler := handlers.NewAlbumHandler(albumService, metrics)
	songHandler := handlers.NewSongHandler(songService)
	userHandler := handlers.NewUserHandler(userService)
	authenticationHandler := handlers.NewAuthenticationHandler(userService, authenticationService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	collaborationHandler := handlers.NewCollaborationHandler(collaborationService, playlistService)
	exportHandler := handlers.NewExportHandler(exportService, playlistService, metrics)

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(metrics.RequestMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)
	router.GET("/metrics", monitoring.Handler())

	router.POST("/albums", albumHandler.PostAlbum)
	router.GET("/albums", albumHandler.GetAlbums)
	router.GET("/albums/:id", albumHandler.GetAlbumByID)
	router.PUT("/albums/:id", albumHandler.PutAlbum)
	router.DELETE("/albums/:id", albumHandler.DeleteAlbum)
	router.PUT("/albums/:id/covers", albumHandler.PutAlbumCover)
	router.GET("/albums/:id/likes", albumHandler.GetAlbumLikes)

	router.POST("/songs", songHandler.PostSong)
	router.GET("/songs", songHandler.GetSongs)
	router.GET("/songs/:id", songHandler.GetSongByID)
	router.PUT("/songs/:id", songHandler.PutSong)
	router.DELETE("/songs/:id", songHandler.DeleteSong)

	router.POST("/users", userHandler.PostUser)

	router.POST("/authentications", authenticationHandler.PostAuthentication)
	router.PUT("/authentications", authenticationHandler.PutAuthentication)
	router.DELETE("/authentications", authenticationHandler.DeleteAuthentication)

	authorized := router.Group("/", middleware.AuthMiddleware())
	authorized.POST("/albums/:id/likes", albumHandler.PostAlbumLike)
	authorized.DELETE("/albums/:id/likes", albumHandler.DeleteAlbumLike)

	authorized.POST("/playlists", playlistHandler.PostPlaylist)
	authorized.GET("/playlists", playlistHandler.GetPlaylists)
	authorized.DELETE("/playlists/:id", playlistHandler.DeletePlaylist)
	authorized.POST("/playlists/:id/songs", playlistHandler.PostPlaylistSong)
	authorized.GET("/playlists/:id/songs", playlistHandler.GetPlaylistSongs)
	authorized.DELETE("/playlists/:id/songs", playlistHandler.DeletePlaylistSong)
	authorized.GET("/playlists/:id/activities", playlistHandler.GetPlaylistActivities)

	authorized.POST("/collaborations", collaborationHandler.PostCollaboration)
	authorized.DELETE("/collaborations", collaborationHandler.DeleteCollaboration)

	authorized.POST("/export/playlists/:id", exportHandler.PostExportPlaylist)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Info("OpenMusic API starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
