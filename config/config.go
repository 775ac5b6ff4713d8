package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Google Sheets partitions (spreadsheet IDs)
	StudentSheetID string
	TrainerSheetID string
	TraineeSheetID string

	GoogleCredentialsFile string

	// Certificate rendering
	TemplateDir     string
	FontDir         string
	TemplateBaseURL string // optional remote source for missing template assets
	VerifyBaseURL   string

	EmailSender string
	Password    string // SMTP App Password

	AdminEmail    string
	AdminPassword string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		StudentSheetID: getEnv("STUDENT_SHEET_ID", ""),
		TrainerSheetID: getEnv("TRAINER_SHEET_ID", ""),
		TraineeSheetID: getEnv("TRAINEE_SHEET_ID", ""),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "service-account.json"),

		TemplateDir:     getEnv("TEMPLATE_DIR", "./Certificate_Templates"),
		FontDir:         getEnv("FONT_DIR", "./Certificate_Templates/fonts"),
		TemplateBaseURL: getEnv("TEMPLATE_BASE_URL", ""),
		VerifyBaseURL:   getEnv("VERIFICATION_BASE_URL", "https://certificates.suretrust.org/verify"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@suretrust.org"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StudentSheetID == "" || AppConfig.TrainerSheetID == "" || AppConfig.TraineeSheetID == "" {
		log.Println("Warning: One or more partition sheet IDs are not set. Update them in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
