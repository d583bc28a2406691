package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/config"
)

// StorageService archives the original upload next to the generated
// feedback. Keys are opaque to callers.
type StorageService interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewStorageService picks the archive backend from STORAGE_DRIVER.
func NewStorageService(ctx context.Context, cfg config.StorageConfig) (StorageService, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		local := NewLocalStorageService(cfg.UploadPath)
		if err := local.EnsureUploadDir(); err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		return NewS3StorageService(ctx, cfg)
	case "none":
		return NoopStorageService{}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// archiveName keeps the original extension so archived files stay openable.
func archiveName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	return fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
}

type LocalStorageService struct {
	uploadPath string
}

func NewLocalStorageService(uploadPath string) *LocalStorageService {
	return &LocalStorageService{
		uploadPath: uploadPath,
	}
}

func (s *LocalStorageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *LocalStorageService) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := archiveName(originalName)

	dst, err := os.Create(s.GetFilePath(key))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return key, nil
}

func (s *LocalStorageService) GetFilePath(key string) string {
	return filepath.Join(s.uploadPath, filepath.Base(key))
}

func (s *LocalStorageService) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.GetFilePath(key)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

type S3StorageService struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3StorageService(ctx context.Context, cfg config.StorageConfig) (*S3StorageService, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET must be set when STORAGE_DRIVER=s3")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", cfg.S3Bucket).Str("prefix", cfg.S3Prefix).Msg("✅ S3 archive configured")

	return &S3StorageService{
		client: client,
		bucket: cfg.S3Bucket,
		prefix: strings.Trim(cfg.S3Prefix, "/"),
	}, nil
}

func (s *S3StorageService) objectKey(originalName string) string {
	name := archiveName(originalName)
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3StorageService) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	key := s.objectKey(originalName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3: %w", key, err)
	}

	return key, nil
}

func (s *S3StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from s3: %w", key, err)
	}
	return nil
}

// NoopStorageService discards uploads; records then carry an empty key.
type NoopStorageService struct{}

func (NoopStorageService) Save(context.Context, string, io.Reader) (string, error) {
	return "", nil
}

func (NoopStorageService) Delete(context.Context, string) error {
	return nil
}
