package s3

import (
	"fmt"
	"io"
	"strings"

	"dalil/pkg/config"
	"dalil/pkg/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage is the object store as seen by the media pipeline.
type Storage interface {
	UploadFile(bucket, key string, body io.ReadSeeker, contentType string) (string, error)
	DeleteFile(bucket, key string) error
}

type Client struct {
	s3Client  *s3.S3
	publicURL string
	logger    *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client:  s3.New(sess),
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
		logger:    log,
	}, nil
}

// EnsureBuckets creates missing buckets. Errors are logged; an upload into a
// missing bucket fails on its own later.
func (c *Client) EnsureBuckets(buckets ...string) {
	for _, bucket := range buckets {
		_, err := c.s3Client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(bucket)})
		if err == nil {
			continue
		}
		if _, err := c.s3Client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
			c.logger.Warn("Failed to create bucket %s: %v", bucket, err)
			continue
		}
		c.logger.Info("Created bucket %s", bucket)
	}
}

func (c *Client) UploadFile(bucket, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return c.ObjectURL(bucket, key), nil
}

func (c *Client) DeleteFile(bucket, key string) error {
	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// ObjectURL builds the public URL of an object. S3_PUBLIC_URL wins when set,
// then the MinIO endpoint, then the AWS virtual-hosted form.
func (c *Client) ObjectURL(bucket, key string) string {
	if c.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", c.publicURL, bucket, key)
	}

	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "https"
		if aws.BoolValue(c.s3Client.Config.DisableSSL) {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
