package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calmharbor/counsel-api/internal/config"
)

type Uploader struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

func NewUploader(cfg *config.Config, log *zap.Logger) *Uploader {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// endpoint customizado para MinIO em dev
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client: client,
		bucket: cfg.S3Bucket,
		log:    log,
	}
}

func (u *Uploader) put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}

// UploadCheckinPhoto grava a foto original e uma miniatura webp; devolve as
// duas chaves. Falha na miniatura não derruba o upload do original.
func (u *Uploader) UploadCheckinPhoto(
	ctx context.Context,
	userID uint,
	day time.Time,
	data []byte,
	contentType string,
) (photoKey string, thumbKey string, err error) {

	id := uuid.NewString()
	prefix := fmt.Sprintf("checkins/%d/%s/%s", userID, day.Format("2006-01-02"), id)

	photoKey = prefix + "/photo"
	if err = u.put(ctx, photoKey, data, contentType); err != nil {
		return "", "", err
	}

	thumb, thumbErr := Thumbnail(data, 512)
	if thumbErr != nil {
		u.log.Warn("thumbnail generation failed", zap.Error(thumbErr))
		return photoKey, "", nil
	}

	thumbKey = prefix + "/thumb.webp"
	if err = u.put(ctx, thumbKey, thumb, "image/webp"); err != nil {
		u.log.Warn("thumbnail upload failed", zap.Error(err))
		return photoKey, "", nil
	}

	return photoKey, thumbKey, nil
}
