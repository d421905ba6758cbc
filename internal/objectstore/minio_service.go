// Package objectstore fetches transcript bundles from a MinIO bucket so
// that CI systems can publish transcription outputs centrally instead of
// shipping a local texts directory. A bundle mirrors the on-disk layout:
// objects under <prefix>/gt/ hold the ground truth, <prefix>/*.txt the
// hypothesis transcripts, and <prefix>/latency.json the performance map.
package objectstore

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient holds the MinIO client and bucket name.
type MinioClient struct {
	Client     *minio.Client
	BucketName string
}

var globalMinioClient *MinioClient

// InitMinioClient initializes the global MinIO client from environment
// variables. This should be called at application startup; the object
// store stays disabled when the MINIO_* variables are not configured.
func InitMinioClient() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKeyID := os.Getenv("MINIO_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("MINIO_SECRET_ACCESS_KEY")
	bucketName := os.Getenv("MINIO_BUCKET_NAME")
	useSSLStr := os.Getenv("MINIO_USE_SSL")

	if endpoint == "" || accessKeyID == "" || secretAccessKey == "" || bucketName == "" {
		return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, and MINIO_BUCKET_NAME must be set")
	}

	useSSL := false
	if useSSLStr != "" {
		parsed, err := strconv.ParseBool(useSSLStr)
		if err != nil {
			log.Printf("Warning: MINIO_USE_SSL environment variable is not a valid boolean ('%s'). Defaulting to false. Error: %v", useSSLStr, err)
		} else {
			useSSL = parsed
		}
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if MinIO bucket '%s' exists: %w", bucketName, err)
	}
	if !exists {
		return fmt.Errorf("MinIO bucket '%s' does not exist", bucketName)
	}

	globalMinioClient = &MinioClient{
		Client:     minioClient,
		BucketName: bucketName,
	}
	log.Println("MinIO client initialized successfully.")
	return nil
}

// Enabled reports whether the object store was initialized for this process.
func Enabled() bool {
	return globalMinioClient != nil
}

// FetchTranscriptBundle downloads every transcript object under prefix into
// destDir, preserving the relative layout (gt/, *.txt, latency.json). Only
// .txt and .json objects are fetched; anything else under the prefix is
// skipped with a log line.
func FetchTranscriptBundle(ctx context.Context, prefix, destDir string) error {
	if globalMinioClient == nil {
		return fmt.Errorf("MinIO client not initialized, call InitMinioClient first")
	}

	prefix = strings.TrimSuffix(prefix, "/") + "/"
	fetched := 0

	objects := globalMinioClient.Client.ListObjects(ctx, globalMinioClient.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", prefix, object.Err)
		}

		relKey := strings.TrimPrefix(object.Key, prefix)
		if relKey == "" || strings.HasSuffix(relKey, "/") {
			continue
		}
		if !strings.HasSuffix(relKey, ".txt") && !strings.HasSuffix(relKey, ".json") {
			log.Printf("Skipping non-transcript object %s", object.Key)
			continue
		}

		localPath := filepath.Join(destDir, filepath.FromSlash(relKey))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", localPath, err)
		}
		if err := globalMinioClient.Client.FGetObject(ctx, globalMinioClient.BucketName, object.Key, localPath, minio.GetObjectOptions{}); err != nil {
			return fmt.Errorf("failed to download %s: %w", object.Key, err)
		}
		fetched++
	}

	if fetched == 0 {
		return fmt.Errorf("no transcript objects found under prefix %s", prefix)
	}
	log.Printf("Fetched %d transcript objects from %s into %s", fetched, prefix, destDir)
	return nil
}
