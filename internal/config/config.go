package config

import (
	"crypto/rsa"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/middleware"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// StrictBalanceCheck switches overpayment validation from the
	// charge's original amount_due to its remaining balance.
	StrictBalanceCheck bool

	// EnableScheduledGeneration runs the in-process monthly generation
	// schedule. Off when the database-side schedule owns it.
	EnableScheduledGeneration bool

	LogLevel string
}

func LoadConfig() *Config {
	// .env is a dev convenience; absence is fine in deployed envs.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, reading environment directly")
	}

	utils.Logger.Info("Loading config for app: ", constants.AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubKey, err := middleware.ParseRSAPublicKeyFromBase64(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		AppName:                   constants.AppName,
		AppPort:                   appPort,
		AppUrl:                    appUrl,
		DBUrl:                     dbURL,
		RSAPublicKey:              pubKey,
		StrictBalanceCheck:        boolEnv("STRICT_BALANCE_CHECK"),
		EnableScheduledGeneration: boolEnv("ENABLE_SCHEDULED_GENERATION"),
		LogLevel:                  os.Getenv("LOG_LEVEL"),
	}
}

func boolEnv(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
