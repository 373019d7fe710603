package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config 結構體用於儲存應用程式的配置
type Config struct {
	Host       string
	Port       string
	DBType     string // sqlite 或 mongodb
	SQLitePath string
	MongoDBURI string
	DBName     string
	RedisAddr  string // 可選，設定後啟用使用者列表快取
}

// LoadConfig 載入配置，優先從環境變數讀取，其次從 .env 檔案讀取
func LoadConfig() *Config {
	// 嘗試載入 .env 檔案，如果不存在也不會報錯
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := &Config{
		Host:       getEnv("HOST", ""),
		Port:       getEnv("PORT", "8000"),
		DBType:     getEnv("DB_TYPE", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "data/database/sixin.db"),
		MongoDBURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:     getEnv("DB_NAME", "sixin_server"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
	}
	return cfg
}

// getEnv 輔助函數，用於從環境變數獲取值，如果不存在則使用預設值
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
