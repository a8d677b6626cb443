package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/failure"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3 wraps the object storage operations used for room images.
type S3 interface {
	Upload(ctx context.Context, dir, fileName, contentType string, content []byte) (string, error)
	Delete(ctx context.Context, dir, fileName string) error
	PublicURL(dir, fileName string) string
}

type s3Impl struct {
	client *awsS3.Client
	config *config.Config
	otel   otel.Otel
}

func New(conf *config.Config, ot otel.Otel) S3 {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.External.S3.AccessKeyID,
			conf.External.S3.SecretAccessKey,
			"",
		)),
		awsConfig.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load S3 config")
	}

	client := awsS3.NewFromConfig(awsCfg, func(o *awsS3.Options) {
		o.BaseEndpoint = aws.String(conf.External.S3.APIEndpoint)
		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		config: conf,
		otel:   ot,
	}
}

func (s *s3Impl) Upload(ctx context.Context, dir, fileName, contentType string, content []byte) (string, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelS3ScopeName, "Upload")
	defer scope.End()

	key := path.Join(dir, fileName)
	scope.SetAttribute("key", key)

	_, err := s.client.PutObject(ctx, &awsS3.PutObjectInput{
		Bucket:      aws.String(s.config.External.S3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("[Upload] Failed to upload object")
		return "", failure.InternalError(err)
	}

	return s.PublicURL(dir, fileName), nil
}

func (s *s3Impl) Delete(ctx context.Context, dir, fileName string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelS3ScopeName, "Delete")
	defer scope.End()

	key := path.Join(dir, fileName)
	scope.SetAttribute("key", key)

	_, err := s.client.DeleteObject(ctx, &awsS3.DeleteObjectInput{
		Bucket: aws.String(s.config.External.S3.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("[Delete] Failed to delete object")
		return failure.InternalError(err)
	}

	return nil
}

func (s *s3Impl) PublicURL(dir, fileName string) string {
	return fmt.Sprintf("%s/%s", s.config.External.S3.PublicDomain, path.Join(dir, fileName))
}
