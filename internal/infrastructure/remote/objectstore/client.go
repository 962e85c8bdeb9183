// Package objectstore provides a Remote implementation on an S3-compatible bucket.
// A resource is a key prefix; every note is one object under it.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

// deleteBatch is the S3 limit on keys per DeleteObjects call.
const deleteBatch = 1000

// objectAPI is the subset of *s3.Client used by the remote.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, opts ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Client implements ports.Remote on S3.
type Client struct {
	bucket string
	newAPI func(ctx context.Context, token string) (objectAPI, error)
}

// NewClient creates an S3 remote for the configured bucket.
// The token has the form "accessKey:secretKey"; an empty token uses the
// default AWS credential chain.
func NewClient(cfg config.S3Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket is required")
	}

	return &Client{
		bucket: cfg.Bucket,
		newAPI: func(ctx context.Context, token string) (objectAPI, error) {
			return newS3Client(ctx, cfg, token)
		},
	}, nil
}

func newS3Client(ctx context.Context, cfg config.S3Config, token string) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if token != "" {
		access, secret, ok := strings.Cut(token, ":")
		if !ok {
			return nil, errors.New(`S3 token must have the form "access:secret"`)
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ListNoteFiles returns every object body under the resource prefix except the metadata object.
func (c *Client) ListNoteFiles(ctx context.Context, token, resourceID string) ([]string, error) {
	api, err := c.open(ctx, token, resourceID)
	if err != nil {
		return nil, err
	}

	keys, err := c.listKeys(ctx, api, resourceID)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(keys))
	for _, key := range keys {
		out, err := api.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(c.bucket), Key: aws.String(key)})
		if err != nil {
			return nil, fmt.Errorf("getting %s: %w", key, err)
		}
		body, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		contents = append(contents, string(body))
	}
	return contents, nil
}

// CreateResource allocates a fresh prefix and writes its metadata object.
func (c *Client) CreateResource(ctx context.Context, token string) (*ports.Resource, error) {
	api, err := c.newAPI(ctx, token)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	if err := c.put(ctx, api, objectKey(id, ports.MetaFileName), parsers.MetaContent); err != nil {
		return nil, err
	}
	return &ports.Resource{ID: id, Handle: "s3://" + c.bucket + "/" + id}, nil
}

// ReplaceAllFiles uploads files and deletes any other note object under the prefix.
func (c *Client) ReplaceAllFiles(ctx context.Context, token, resourceID string, files map[string]string) error {
	api, err := c.open(ctx, token, resourceID)
	if err != nil {
		return err
	}

	existing, err := c.listKeys(ctx, api, resourceID)
	if err != nil {
		return err
	}

	for name, content := range files {
		if err := c.put(ctx, api, objectKey(resourceID, name), content); err != nil {
			return err
		}
	}

	var stale []types.ObjectIdentifier
	for _, key := range existing {
		if _, keep := files[path.Base(key)]; !keep {
			stale = append(stale, types.ObjectIdentifier{Key: aws.String(key)})
		}
	}
	for start := 0; start < len(stale); start += deleteBatch {
		end := min(start+deleteBatch, len(stale))
		out, err := api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{Objects: stale[start:end], Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("deleting stale notes: %w", err)
		}
		if len(out.Errors) > 0 {
			return fmt.Errorf("deleting %s: %s", aws.ToString(out.Errors[0].Key), aws.ToString(out.Errors[0].Message))
		}
	}
	return nil
}

// open builds a client and checks that the resource metadata object exists.
func (c *Client) open(ctx context.Context, token, resourceID string) (objectAPI, error) {
	if resourceID == "" {
		return nil, domain.ErrResourceNotConfig
	}

	api, err := c.newAPI(ctx, token)
	if err != nil {
		return nil, err
	}

	_, err = api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(resourceID, ports.MetaFileName)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3 prefix %s: %w", resourceID, domain.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("checking s3 prefix %s: %w", resourceID, err)
	}
	return api, nil
}

// listKeys returns every note key under the prefix in lexical order.
func (c *Client) listKeys(ctx context.Context, api objectAPI, resourceID string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(resourceID + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3 prefix %s: %w", resourceID, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if path.Base(key) == ports.MetaFileName {
				continue
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *Client) put(ctx context.Context, api objectAPI, key, content string) error {
	_, err := api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(content),
		ContentType: aws.String("application/yaml"),
	})
	if err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}
	return nil
}

func objectKey(resourceID, name string) string {
	return resourceID + "/" + name
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
