package proofstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const webpQuality = 80

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Archive stores payment proofs as WebP objects.
type S3Archive struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

func NewS3Archive(cfg Config) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("proofstore: bucket is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return newS3Archive(s3.New(opts), cfg.Bucket), nil
}

func newS3Archive(client objectPutter, bucket string) *S3Archive {
	return &S3Archive{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

func (a *S3Archive) StoreProof(ctx context.Context, formID string, proof *domain.Proof) (string, error) {
	if proof == nil || proof.Image == nil {
		return "", errors.New("proofstore: empty proof")
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, proof.Image, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("proofstore: encode webp: %w", err)
	}

	key := fmt.Sprintf("proofs/%s/%s.webp", a.now().UTC().Format("2006/01/02"), formID)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("proofstore: put object: %w", err)
	}
	return key, nil
}

var _ domain.ProofArchive = (*S3Archive)(nil)
