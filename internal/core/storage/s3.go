package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Provider stores document files in an AWS S3 bucket.
type S3Provider struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Provider creates an S3 storage provider with static credentials.
func NewS3Provider(accessKeyID, secretAccessKey, region, bucket string) (*S3Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Provider{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}, nil
}

func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}

func (p *S3Provider) Store(ctx context.Context, data []byte, filename, mimeType string) (*StoredFile, error) {
	if err := ValidateUpload(int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	key := p.buildKey(filename)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredFile{
		Key:  key,
		URL:  p.GetURL(key),
		Size: int64(len(data)),
	}, nil
}

func (p *S3Provider) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, nil
}

func (p *S3Provider) Delete(ctx context.Context, key string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (p *S3Provider) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", p.baseURL, key)
}

func (p *S3Provider) buildKey(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("documents/%s_%d_%s%s", base, time.Now().Unix(), uniqueID, ext)
}
