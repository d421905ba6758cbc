// Server entrypoint: exposes evaluation runs, results, and the active
// configuration over HTTP. Run persistence (postgres) and the transcript
// object store (MinIO) are optional and enabled by their environment
// variables.
package main

import (
	"fmt"
	"log"
	"os"

	"transcription-qa-platform/internal/apigateway"
	"transcription-qa-platform/internal/auth"
	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/configmanagement"
	"transcription-qa-platform/internal/datastore"
	"transcription-qa-platform/internal/jobmanagement"
	"transcription-qa-platform/internal/objectstore"
)

func main() {
	// All configuration is loaded exactly once, before the router starts.
	auth.LoadAdminCredentials()
	thresholds := config.LoadThresholds()
	transcriptor := config.LoadTranscriptor()

	if dsn := databaseDSN(); dsn != "" {
		if err := datastore.InitDB(dsn); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer datastore.DB.Close()
		log.Println("Run persistence enabled.")
	} else {
		log.Println("DB_HOST not set; run persistence disabled.")
	}

	if os.Getenv("MINIO_ENDPOINT") != "" {
		if err := objectstore.InitMinioClient(); err != nil {
			log.Fatalf("Failed to initialize MinIO client: %v", err)
		}
	} else {
		log.Println("MINIO_ENDPOINT not set; transcript object store disabled.")
	}

	runService := jobmanagement.NewRunService(thresholds, transcriptor)
	configHandlers := &configmanagement.ConfigHandlers{
		Thresholds:   thresholds,
		Transcriptor: transcriptor,
	}

	router := apigateway.SetupRouter(runService, configHandlers)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	log.Printf("Starting server on :%s", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// databaseDSN assembles the postgres DSN from the DB_* environment
// variables. Returns "" when DB_HOST is unset, which disables persistence.
func databaseDSN() string {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return ""
	}

	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSSLMode := os.Getenv("DB_SSLMODE")

	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		log.Println("WARNING: DB_PASSWORD environment variable not set.")
	}
	if dbName == "" {
		dbName = "transcription_qa_db"
	}
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
}
