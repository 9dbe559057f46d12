package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/garagego/api/config"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const (
	MaxImageSize     = 5 * 1024 * 1024 // 5 MB
	AllowedMimeTypes = "image/jpeg,image/png,image/webp"
	thumbnailWidth   = 320
)

// MediaService stores listing and avatar images in the S3 bucket and hands
// back their public urls
type MediaService interface {
	UploadImage(fileHeader *multipart.FileHeader, folder string) (string, error)
	UploadAvatar(fileHeader *multipart.FileHeader, userID uuid.UUID) (string, error)
}

type mediaService struct {
	Config *config.Config
	client *s3.Client
}

func NewMediaService(conf *config.Config) (MediaService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AwsAccessKeyID,
			conf.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}
	return &mediaService{
		Config: conf,
		client: s3.NewFromConfig(cfg),
	}, nil
}

func validateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageSize {
		return fmt.Errorf("file size exceeds limit of %d bytes", MaxImageSize)
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	for _, allowed := range strings.Split(AllowedMimeTypes, ",") {
		if mimeType == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid file type: %s", mimeType)
}

func (m *mediaService) UploadImage(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if err := validateImage(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err = m.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.S3Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		log.Printf("error uploading file to S3: %v", err)
		return "", errors.Wrap(err, "upload to s3")
	}

	return m.publicURL(key), nil
}

// UploadAvatar stores a squared-down thumbnail rather than the original, so
// profile pictures stay small
func (m *mediaService) UploadAvatar(fileHeader *multipart.FileHeader, userID uuid.UUID) (string, error) {
	if err := validateImage(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(err, "decode image")
	}
	thumb := resize.Thumbnail(thumbnailWidth, thumbnailWidth, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", errors.Wrap(err, "encode thumbnail")
	}

	key := fmt.Sprintf("avatars/%s.jpg", userID)
	_, err = m.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		log.Printf("error uploading avatar to S3: %v", err)
		return "", errors.Wrap(err, "upload to s3")
	}

	return m.publicURL(key), nil
}

func (m *mediaService) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.S3Bucket, m.Config.AwsRegion, key)
}
