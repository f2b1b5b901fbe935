package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	folderEnvVar   = "FOLDER"
	baseURLVar     = "BASE_URL"
	databaseEnvVar = "DATABASE"

	// DatabaseMemory keeps every repository in process memory.
	DatabaseMemory = "memory"
	// DatabaseSQLite stores repositories in <FOLDER>/portal.db.
	DatabaseSQLite = "sqlite"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ SmtpConfig = EnvVars{}
var _ AdminConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Internship Portal")
}

func (EnvVars) GetSmtpPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

func (EnvVars) GetSmtpAccount() string {
	return GetEnv("SMTP_ACCOUNT", "")
}

func (EnvVars) GetSmtpHost() string {
	return GetEnv("SMTP_HOST", "smtp.gmail.com")
}

func (EnvVars) GetSmtpPort() string {
	return GetEnv("SMTP_PORT", "587")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

// GetDatabase selects the repository backend: "memory" or "sqlite".
func (EnvVars) GetDatabase() string {
	return strings.ToLower(GetEnv(databaseEnvVar, DatabaseMemory))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the public base URL of the API (e.g., "https://api.example.com")
// Upload URLs are built relative to it
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetAdminUsername() string {
	return GetEnv("ADMIN_USERNAME", "admin")
}

func (EnvVars) GetAdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "admin@localhost")
}

// GetAdminPassword returns the bootstrap superuser password; empty generates one on first start
func (EnvVars) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
