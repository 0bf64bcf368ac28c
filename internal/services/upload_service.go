package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

// StorageConfig points at the S3-compatible bucket holding profile
// attachments (CVs, logos). Bytes go straight from the browser to the
// bucket; this service only signs URLs.
type StorageConfig struct {
	Bucket     string
	PublicURL  string
	PresignTTL time.Duration
}

type uploadRule struct {
	maxBytes     int64
	allowedMIMEs map[string]bool
}

var uploadRules = map[string]uploadRule{
	"cv": {
		maxBytes: 5 << 20,
		allowedMIMEs: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		},
	},
	"logo": {
		maxBytes: 2 << 20,
		allowedMIMEs: map[string]bool{
			"image/png":     true,
			"image/jpeg":    true,
			"image/webp":    true,
			"image/svg+xml": true,
		},
	},
	"document": {
		maxBytes: 10 << 20,
		allowedMIMEs: map[string]bool{
			"application/pdf": true,
		},
	},
}

type uploadService struct {
	presigner *s3.PresignClient
	client    *s3.Client
	config    StorageConfig
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUploadService(client *s3.Client, config StorageConfig, logger *slog.Logger, v *validator.Validator) UploadService {
	if config.PresignTTL <= 0 {
		config.PresignTTL = 15 * time.Minute
	}
	return &uploadService{
		presigner: s3.NewPresignClient(client),
		client:    client,
		config:    config,
		logger:    logger,
		validator: v,
	}
}

func (s *uploadService) PresignUpload(ctx context.Context, userID string, req *PresignUploadRequest) (*models.PresignedUploadResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	uploadType := req.UploadType
	if uploadType == "" {
		uploadType = "document"
	}

	rule := uploadRules[uploadType]
	if !rule.allowedMIMEs[req.FileType] {
		return nil, &ServiceError{
			Kind:     KindValidation,
			Resource: "upload",
			Action:   "presign",
			Reason:   fmt.Sprintf("file type %s is not allowed for %s uploads", req.FileType, uploadType),
		}
	}
	if req.FileSize > rule.maxBytes {
		return nil, &ServiceError{
			Kind:     KindValidation,
			Resource: "upload",
			Action:   "presign",
			Reason:   fmt.Sprintf("file exceeds the %d byte limit for %s uploads", rule.maxBytes, uploadType),
		}
	}

	key := fmt.Sprintf("uploads/%s/%s/%s-%s", uploadType, userID, uuid.New().String(), sanitizeFileName(req.FileName))

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(req.FileType),
		ContentLength: aws.Int64(req.FileSize),
	}, s3.WithPresignExpires(s.config.PresignTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	s.logger.Info("Upload URL issued", "user_id", userID, "key", key, "type", uploadType)

	return &models.PresignedUploadResponse{
		UploadURL: presigned.URL,
		Key:       key,
		PublicURL: s.config.PublicURL + "/" + key,
		ExpiresIn: int(s.config.PresignTTL.Seconds()),
	}, nil
}

func (s *uploadService) DeleteUpload(ctx context.Context, userID string, req *DeleteUploadRequest) error {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	key, err := s.keyFromURL(req.FileURL)
	if err != nil {
		return err
	}

	// Keys embed the owner: uploads/<type>/<userID>/<file>. Only the
	// owner may delete.
	parts := strings.Split(key, "/")
	if len(parts) < 4 || parts[2] != userID {
		return NewPermissionError(userID, key, "upload", "delete", "object belongs to another user")
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	s.logger.Info("Upload deleted", "user_id", userID, "key", key)
	return nil
}

func (s *uploadService) keyFromURL(fileURL string) (string, error) {
	prefix := s.config.PublicURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", &ServiceError{
			Kind:     KindValidation,
			Resource: "upload",
			Action:   "delete",
			Reason:   "URL does not point at managed storage",
		}
	}

	key := strings.TrimPrefix(fileURL, prefix)
	if key == "" || !strings.HasPrefix(key, "uploads/") {
		return "", &ServiceError{
			Kind:     KindValidation,
			Resource: "upload",
			Action:   "delete",
			Reason:   "URL does not reference an upload key",
		}
	}
	return key, nil
}

func sanitizeFileName(name string) string {
	base := path.Base(name)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if base == "" || base == "." {
		return "file"
	}
	return base
}
