package assets

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/starbugmolt/starbug/internal/errors"
)

// GetObjectAPI is the part of *s3.Client used by S3Source.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source serves assets from a bucket. Asset "a/b.png" is read from key
// prefix+"a/b.png".
type S3Source struct {
	client GetObjectAPI
	bucket string
	prefix string
}

// NewS3Source creates a bucket-backed source.
//
// Example:
//
//	client := assets.NewS3Client(assets.S3Options{Region: "eu-west-2"})
//	src := assets.NewS3Source(client, "starbug-site", "static/")
func NewS3Source(client GetObjectAPI, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Source) Open(ctx context.Context, name string) (*Object, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	key := s.prefix + name

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, errors.New("E140").WithDetailf("s3://%s/%s", s.bucket, key)
		}
		return nil, errors.New("E142").WithDetailf("s3://%s/%s", s.bucket, key).Wrap(err)
	}

	obj := &Object{
		Body:        out.Body,
		Size:        -1,
		ContentType: aws.ToString(out.ContentType),
		ModTime:     aws.ToTime(out.LastModified),
		ETag:        aws.ToString(out.ETag),
	}
	if out.ContentLength != nil {
		obj.Size = *out.ContentLength
	}
	if obj.ContentType == "" || obj.ContentType == "binary/octet-stream" {
		obj.ContentType = contentType(name)
	}
	return obj, nil
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region string

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool
}

// NewS3Client builds an S3 client. Credentials come from the standard
// AWS_* environment variables; without them requests are anonymous, which
// works for public buckets.
func NewS3Client(opts S3Options) *s3.Client {
	o := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
		Credentials:  envCredentials(),
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

func envCredentials() aws.CredentialsProvider {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	creds := aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	return aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return creds, nil
	}))
}
