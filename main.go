package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Ireoo/sixin-server/config"
	"github.com/Ireoo/sixin-server/database"
	"github.com/Ireoo/sixin-server/handlers"
	"github.com/Ireoo/sixin-server/middleware"
	"github.com/Ireoo/sixin-server/socket"
)

func main() {
	cfg := config.LoadConfig()

	// SQLite 需要資料目錄先存在
	if cfg.DBType == string(database.SQLite) {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	db, err := database.NewDatabaseManager(database.DatabaseType(cfg.DBType), databaseConn(cfg), cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 配置了 Redis 就包一層使用者列表快取
	if cfg.RedisAddr != "" {
		cached, err := database.NewCachedManager(db, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		db = cached
	}

	gateway := socket.NewGateway(db)
	gateway.Start()

	router := mux.NewRouter()
	router.Use(middleware.Logger)

	httpHandler := handlers.NewHTTPHandler(db)
	httpHandler.RegisterRoutes(router)

	router.HandleFunc("/socket.io", gateway.HandleSocketIO)

	// 設置 CORS 中介軟體
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	})
	handler := c.Handler(router)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", serverAddr, err)
		}
	}()

	// 當按下 Ctrl+C，程式會收到 SIGINT
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal %s, shutting down server...", sig)

	// 最多等 30 秒關閉，避免請求中斷
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	gateway.Stop()
	if err := db.Close(ctx); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server exited gracefully.")
}

// databaseConn 依資料庫類型選擇連線字串
func databaseConn(cfg *config.Config) string {
	if cfg.DBType == string(database.MongoDB) {
		return cfg.MongoDBURI
	}
	return cfg.SQLitePath
}
