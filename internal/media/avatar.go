package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/neuromancers/session-scheduler/internal/config"
	"github.com/neuromancers/session-scheduler/internal/httperr"
)

const (
	avatarSize    = 400
	webpQuality   = 85
	maxUploadSize = 10 << 20
)

// Uploader stores profile avatars: decode, square-crop-resize, encode
// as webp and push to S3.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
	log    *zap.Logger
}

func NewUploader(cfg *config.Config, log *zap.Logger) *Uploader {
	awsCfg := aws.Config{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AvatarBucket,
		region: cfg.AWSRegion,
		log:    log,
	}
}

// UploadAvatar processes and stores one avatar image, returning its
// public URL.
func (u *Uploader) UploadAvatar(
	ctx context.Context,
	userID uuid.UUID,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(io.LimitReader(r, maxUploadSize))
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	resized := squareResize(src, avatarSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{
		Quality: webpQuality,
	}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s.webp", userID, uuid.New())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		u.log.Error("avatar upload failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return "", err
	}

	return fmt.Sprintf(
		"https://%s.s3.%s.amazonaws.com/%s",
		u.bucket, u.region, key,
	), nil
}

// squareResize center-crops to a square and scales to size×size.
func squareResize(src image.Image, size int) image.Image {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}

	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}
