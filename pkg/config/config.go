package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	GitHub   GitHubConfig
	OpenAI   OpenAIConfig
	Filter   FilterConfig
	Judge    JudgeConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Token       string
	SearchQuery string
	ScanLimit   int
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type FilterConfig struct {
	MinAgeDays            int
	MaxAgeDays            int
	ViralThreshold        int
	ActivityThresholdDays int
	ReadmeMinLength       int
	ReadmeMinKeywords     int
	IncubationHours       int
	TargetKeywords        []string
	ReadmeKeywords        []string
	ProductionKeywords    []string
}

type JudgeConfig struct {
	PublishThreshold int
	CooldownSeconds  int
}

type ReportConfig struct {
	JSONPath  string
	ExcelPath string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./dealflow.db"),
		},
		GitHub: GitHubConfig{
			Token:       getEnv("GITHUB_TOKEN", ""),
			SearchQuery: getEnv("SEARCH_QUERY", "topic:ai language:python"),
			ScanLimit:   getEnvAsInt("SCAN_LIMIT", 10),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o"),
		},
		Filter: FilterConfig{
			MinAgeDays:            getEnvAsInt("MIN_AGE_DAYS", 7),
			MaxAgeDays:            getEnvAsInt("MAX_AGE_DAYS", 90),
			ViralThreshold:        getEnvAsInt("VIRAL_THRESHOLD", 30),
			ActivityThresholdDays: getEnvAsInt("ACTIVITY_THRESHOLD_DAYS", 14),
			ReadmeMinLength:       getEnvAsInt("README_MIN_LENGTH", 800),
			ReadmeMinKeywords:     getEnvAsInt("README_MIN_KEYWORDS", 2),
			IncubationHours:       getEnvAsInt("INCUBATION_HOURS", 18),
			TargetKeywords: getEnvAsSlice("TARGET_KEYWORDS", []string{
				"agent", "orchestration", "inference", "rag", "eval",
				"workflow", "automation", "devtools", "infra", "observability",
			}),
			ReadmeKeywords: getEnvAsSlice("README_KEYWORDS", []string{
				"use case", "problem", "solution", "why", "example",
				"quickstart", "demo", "workflow",
			}),
			ProductionKeywords: getEnvAsSlice("PRODUCTION_KEYWORDS", []string{
				"production", "deploy", "self-hosted", "on-prem", "latency", "cost",
			}),
		},
		Judge: JudgeConfig{
			PublishThreshold: getEnvAsInt("PUBLISH_THRESHOLD", 18),
			CooldownSeconds:  getEnvAsInt("JUDGE_COOLDOWN_SECONDS", 12),
		},
		Report: ReportConfig{
			JSONPath:  getEnv("REPORT_JSON_PATH", "./final_delivery.json"),
			ExcelPath: getEnv("REPORT_EXCEL_PATH", "./judgments.xlsx"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSlice gets a comma-separated environment variable or returns a default value
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
