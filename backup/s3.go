package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for the S3 snapshot backend.
// All fields except Bucket are optional and fall back to AWS defaults.
type S3Config struct {
	Bucket          string // S3 bucket name (required)
	Prefix          string // key prefix for all snapshots (optional)
	Region          string // AWS region (optional, uses default if empty)
	AccessKeyID     string // AWS access key ID (optional, uses environment/default)
	SecretAccessKey string // AWS secret access key (optional, uses environment/default)
	Endpoint        string // Custom S3 endpoint (optional, for S3-compatible services)
	ForcePathStyle  bool   // Use path-style addressing (optional, for S3-compatible services)
}

// S3 implements the Store interface on Amazon S3, or on S3-compatible
// services such as MinIO when Endpoint is set.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
	config S3Config
}

// NewS3 creates an S3 snapshot store. Credentials come from the
// environment, an IAM role, or the explicit config fields.
//
// Example:
//
//	store, err := backup.NewS3(backup.S3Config{
//	    Bucket: "settings-backups",
//	    Prefix: "pde",
//	    Region: "us-west-2",
//	})
func NewS3(config S3Config) (*S3, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var awsConfig aws.Config
	var err error

	if config.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               config.Endpoint,
				SigningRegion:     config.Region,
				HostnameImmutable: true,
			}, nil
		})
		awsConfig, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithEndpointResolverWithOptions(resolver),
			awsconfig.WithRegion(config.Region),
		)
	} else {
		awsConfig, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsConfig.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     config.AccessKeyID,
				SecretAccessKey: config.SecretAccessKey,
			}, nil
		})
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if config.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3{
		client: client,
		bucket: config.Bucket,
		prefix: strings.Trim(config.Prefix, "/"),
		config: config,
	}, nil
}

// key maps a snapshot name to its object key under the configured prefix.
func (s *S3) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads a snapshot to the bucket.
func (s *S3) Put(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   reader,
	}
	if _, err := s.client.PutObject(context.Background(), input); err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %v", err)
	}
	return name, nil
}

// Get downloads a snapshot from the bucket.
func (s *S3) Get(name string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %v", err)
	}
	return result.Body, nil
}

// Exists reports whether a snapshot object is present in the bucket.
func (s *S3) Exists(name string) bool {
	_, err := s.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err == nil
}

// Size returns the size of a snapshot object in bytes.
func (s *S3) Size(name string) (int64, error) {
	result, err := s.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot size: %v", err)
	}
	if result.ContentLength == nil {
		return 0, nil
	}
	return *result.ContentLength, nil
}

// List returns the names of all snapshots under the configured prefix.
func (s *S3) List() ([]string, error) {
	var names []string
	var continuationToken *string

	strip := ""
	if s.prefix != "" {
		strip = s.prefix + "/"
	}

	for {
		input := &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
		}
		if s.prefix != "" {
			input.Prefix = aws.String(strip)
		}
		if continuationToken != nil {
			input.ContinuationToken = continuationToken
		}

		result, err := s.client.ListObjectsV2(context.Background(), input)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %v", err)
		}
		for _, object := range result.Contents {
			if object.Key != nil {
				names = append(names, strings.TrimPrefix(*object.Key, strip))
			}
		}

		if result.IsTruncated == nil || !*result.IsTruncated {
			break
		}
		continuationToken = result.NextContinuationToken
	}
	return names, nil
}

// Delete removes a snapshot object from the bucket.
func (s *S3) Delete(name string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %v", err)
	}
	return nil
}

// SignedURL generates a pre-signed GET URL for sharing a snapshot.
func (s *S3) SignedURL(name string, expiry time.Duration) (string, error) {
	presign := s3.NewPresignClient(s.client)
	request, err := presign.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %v", err)
	}
	return request.URL, nil
}

// Info returns bucket metadata plus snapshot count and total size.
func (s *S3) Info() (map[string]interface{}, error) {
	info := map[string]interface{}{
		"type":   "s3",
		"bucket": s.bucket,
		"region": s.config.Region,
	}
	if s.prefix != "" {
		info["prefix"] = s.prefix
	}

	location, err := s.client.GetBucketLocation(context.Background(), &s3.GetBucketLocationInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil && location.LocationConstraint != "" {
		info["location"] = string(location.LocationConstraint)
	}

	var totalSize int64
	var count int
	names, err := s.List()
	if err != nil {
		return info, nil // Partial info is still useful.
	}
	for _, name := range names {
		if size, err := s.Size(name); err == nil {
			totalSize += size
		}
		count++
	}
	info["totalSize"] = totalSize
	info["count"] = count
	return info, nil
}

// Close is a no-op; the S3 client needs no explicit cleanup.
func (s *S3) Close() error {
	return nil
}
