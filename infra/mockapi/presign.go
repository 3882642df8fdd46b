package mockapi

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/infra/config"
)

const presignTTL = 15 * time.Minute

// Presigner issues temporary upload targets. baseURL is the externally visible
// root of the mock server, used by targets it serves itself.
type Presigner interface {
	Presign(ctx context.Context, baseURL, fileName string) (domain.PresignedUpload, error)
}

// objectKey builds a collision-free key that keeps the original extension.
func objectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(fileName, `\`, "/"))))
	return "images/" + uuid.NewString() + ext
}

// localPresigner targets the mock server's own /uploads route. The one-time
// token in the query plays the role of a signature.
type localPresigner struct {
	store *Store
}

func (p localPresigner) Presign(_ context.Context, baseURL, fileName string) (domain.PresignedUpload, error) {
	key := objectKey(fileName)
	token := uuid.NewString()
	p.store.ReserveUpload(key, token)

	objURL := strings.TrimRight(baseURL, "/") + "/uploads/" + key
	return domain.PresignedUpload{
		PresignedURL: objURL + "?" + url.Values{"token": {token}}.Encode(),
		ImgURL:       objURL,
	}, nil
}

// s3Presigner signs PutObject requests against a real or S3-compatible bucket.
type s3Presigner struct {
	client *s3.S3
	bucket string
}

func newS3Presigner(cfg config.S3Config) (*s3Presigner, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	// MinIO and friends need path-style addressing.
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &s3Presigner{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

func (p *s3Presigner) Presign(ctx context.Context, _ string, fileName string) (domain.PresignedUpload, error) {
	key := objectKey(fileName)
	req, _ := p.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	signed, err := req.Presign(presignTTL)
	if err != nil {
		return domain.PresignedUpload{}, fmt.Errorf("presigning %s: %w", key, err)
	}
	return domain.PresignedUpload{PresignedURL: signed, ImgURL: p.objectURL(key)}, nil
}

func (p *s3Presigner) objectURL(key string) string {
	endpoint := aws.StringValue(p.client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), p.bucket, key)
	}
	region := aws.StringValue(p.client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, region, key)
}
