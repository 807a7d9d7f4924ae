package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploader stores an uploaded file and returns its public URL.
type Uploader interface {
	Upload(file *multipart.FileHeader, folder string) (string, error)
}

// Storage uploads to S3 when AWS credentials are configured and falls
// back to a local directory otherwise.
type Storage struct {
	uploader  *s3manager.Uploader
	bucket    string
	useS3     bool
	uploadDir string
	baseURL   string
}

func New() (*Storage, error) {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	bucket := os.Getenv("AWS_S3_BUCKET")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" && bucket != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}

		log.Println("S3 storage initialized")
		return &Storage{
			uploader: s3manager.NewUploader(sess),
			bucket:   bucket,
			useS3:    true,
		}, nil
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	log.Println("S3 not configured, using local file storage:", uploadDir)
	return &Storage{useS3: false, uploadDir: uploadDir, baseURL: baseURL}, nil
}

func (s *Storage) Upload(file *multipart.FileHeader, folder string) (string, error) {
	if s.useS3 {
		return s.uploadToS3(file, folder)
	}
	return s.uploadToLocal(file, folder)
}

func uniqueName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
}

func (s *Storage) uploadToS3(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := filepath.Join(folder, uniqueName(file.Filename))
	out, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return out.Location, nil
}

func (s *Storage) uploadToLocal(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.uploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uniqueName(file.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}
