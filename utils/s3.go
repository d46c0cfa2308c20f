package utils

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/raushankrgupta/virtual-closet/config"
)

var (
	S3Client      *s3.Client
	PresignClient *s3.PresignClient

	s3Once sync.Once
	s3Err  error
)

// MediaEnabled reports whether images are offloaded to S3.
func MediaEnabled() bool {
	return appConfig.AWSBucketName != ""
}

// InitS3 initializes the S3 clients once.
func InitS3() error {
	s3Once.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(appConfig.AWSRegion),
		)
		if err != nil {
			s3Err = fmt.Errorf("unable to load SDK config: %w", err)
			return
		}
		S3Client = s3.NewFromConfig(cfg)
		PresignClient = s3.NewPresignClient(S3Client)
	})
	return s3Err
}

// UploadFileToS3 uploads a file to S3 and returns the Object Key
func UploadFileToS3(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	if err := InitS3(); err != nil {
		return "", err
	}

	_, err := S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(appConfig.AWSBucketName),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return objectKey, nil
}

// GetPresignedURL signs a one hour GET for objectKey.
func GetPresignedURL(ctx context.Context, objectKey string) (string, error) {
	if err := InitS3(); err != nil {
		return "", err
	}

	request, err := PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(appConfig.AWSBucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return request.URL, nil
}
