package services

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

const presignExpiry = 15 * time.Minute

// Presigner is the slice of the S3 presign client the asset service uses.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AssetService hands out short-lived download URLs for the resume PDF and
// gallery images stored in S3. Nothing is proxied through the backend.
//
// Requires environment variables:
//   - ASSETS_BUCKET: S3 bucket holding resume and gallery objects
//   - RESUME_KEY: object key of the resume PDF (default resume.pdf)
type AssetService struct {
	presigner Presigner
	bucket    string
	resumeKey string
	logger    zerolog.Logger
}

func NewAssetService(ctx context.Context, cfg map[string]string) (*AssetService, error) {
	bucket := config.GetString(cfg, "ASSETS_BUCKET", "")
	if bucket == "" {
		return nil, errs.NewEnvironmentVariableError("ASSETS_BUCKET")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errs.NewConfigError("AWS", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &AssetService{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		resumeKey: config.GetString(cfg, "RESUME_KEY", "resume.pdf"),
		logger:    log.With().Str("serviceName", "assetService").Logger(),
	}, nil
}

// ResumeURL returns a presigned link for the resume PDF.
func (s *AssetService) ResumeURL(ctx context.Context) (string, error) {
	return s.presign(ctx, s.resumeKey)
}

// GalleryURL returns a presigned link for one gallery object. Keys are
// constrained to the gallery/ prefix so the endpoint cannot be used to
// read arbitrary objects.
func (s *AssetService) GalleryURL(ctx context.Context, key string) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", errs.NewInvalidFieldError("key", "must be a plain object name")
	}
	return s.presign(ctx, "gallery/"+key)
}

func (s *AssetService) presign(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", errs.NewTransportError("failed to presign S3 object", err)
	}
	return req.URL, nil
}
