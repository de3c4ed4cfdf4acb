package avatars

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/snipkeeper/internal/common"
	sc "github.com/dmitrijs2005/snipkeeper/internal/server/config"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// objectClient is the part of *s3.Client the store needs.
type objectClient interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectClient {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Store keeps avatar bytes in a bucket under avatars/<userID>.
type S3Store struct {
	client objectClient
	bucket string
}

// NewS3Store builds a client for the configured S3-compatible endpoint
// using static credentials and path-style addressing.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket}, nil
}

func objectKey(userID string) string {
	return "avatars/" + userID
}

func (s *S3Store) Save(ctx context.Context, repo users.Repository, userID string, avatar *models.Avatar) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(userID)),
		Body:          bytes.NewReader(avatar.Data),
		ContentType:   aws.String(avatar.MimeType),
		ContentLength: aws.Int64(int64(len(avatar.Data))),
	})
	if err != nil {
		return fmt.Errorf("put avatar: %w", err)
	}

	return repo.SetAvatar(ctx, userID, nil, avatar.MimeType)
}

func (s *S3Store) Load(ctx context.Context, repo users.Repository, userID string) (*models.Avatar, error) {
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasAvatar() {
		return nil, common.ErrorNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(userID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get avatar: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	return &models.Avatar{Data: data, MimeType: user.AvatarMimeType}, nil
}
