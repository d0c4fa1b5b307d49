package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	if cfg.ThresholdsPath != "" {
		if _, err := glucose.LoadThresholds(cfg.ThresholdsPath); err != nil {
			fmt.Printf("❌ Threshold overrides are invalid:\n%v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Configuration details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Allowed Chat ID: %s\n", chatIDText(cfg.AllowedChatID))
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - Gemini Model: %s\n", cfg.GeminiModel)
	fmt.Printf("  - Store Driver: %s\n", cfg.Store.Driver)
	switch cfg.Store.Driver {
	case config.DriverCSV:
		fmt.Printf("  - CSV Path: %s\n", cfg.Store.CSVPath)
	case config.DriverSQLite:
		fmt.Printf("  - SQLite Path: %s\n", cfg.Store.SQLitePath)
	case config.DriverPostgres:
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - Thresholds: %s\n", orDefault(cfg.ThresholdsPath, "<built-in>"))
	fmt.Printf("  - Insight Scope: %s\n", cfg.InsightScope)
	fmt.Printf("  - Redis: %v\n", cfg.Redis.Enabled)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)

	if err := cfg.RequireBot(); err != nil {
		fmt.Printf("⚠️  %v (the sugar CLI still works)\n", err)
	}
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func chatIDText(id int64) string {
	if id == 0 {
		return "<any chat>"
	}
	return fmt.Sprint(id)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
