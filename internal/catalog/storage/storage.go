// Package storage is the object-storage gateway for product images and
// brand logos. The core (§1) treats file upload as an external collaborator
// it merely hands a completed domain object to; this gateway is the thing
// that collaborator calls. Grounded on the aws-sdk-go-v2 S3 stack present in
// the pack's e-commerce sibling service (erniealice-espyna-golang), since
// the teacher itself has no object-storage client of its own.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
)

// Bucket names (§6, §9: product-images / brand-logos).
const (
	BucketProductImages = "product-images"
	BucketBrandLogos    = "brand-logos"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// Gateway uploads files to object storage and returns their public URL.
type Gateway struct {
	client         *s3.Client
	publicBaseURL  string
	maxUploadBytes int64
}

// NewGateway wraps an already-configured S3 client.
func NewGateway(client *s3.Client, publicBaseURL string, maxUploadBytes int64) *Gateway {
	return &Gateway{client: client, publicBaseURL: publicBaseURL, maxUploadBytes: maxUploadBytes}
}

// Upload validates content type and size, then puts the object under
// bucket/key and returns its public URL. Accepted types: jpg, jpeg, png
// (§6). Oversized or wrong-typed uploads fail before any network call.
func (g *Gateway) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", catalogerr.New(catalogerr.KindFileFormat, fmt.Sprintf("unsupported content type %q", contentType))
	}
	if int64(len(data)) > g.maxUploadBytes {
		return "", catalogerr.New(catalogerr.KindFileTooLarge, fmt.Sprintf("upload exceeds %d bytes", g.maxUploadBytes))
	}

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", catalogerr.Wrap(catalogerr.KindStorageUnavailable, "upload object", err)
	}

	return fmt.Sprintf("%s/%s/%s", g.publicBaseURL, bucket, key), nil
}

// EnsureBucket idempotently creates bucket with a public-read policy (C9,
// §9 supplemented from original_source's bootstrap_object_storage). Bucket
// already existing is a success.
func (g *Gateway) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	if _, err := g.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		var alreadyExists *types.BucketAlreadyExists
		if !errors.As(err, &alreadyOwned) && !errors.As(err, &alreadyExists) {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	policy := publicReadPolicy(bucket)
	_, err = g.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(policy),
	})
	if err != nil {
		return fmt.Errorf("put bucket policy %s: %w", bucket, err)
	}
	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
	"Version": "2012-10-17",
	"Statement": [{
		"Sid": "PublicReadGetObject",
		"Effect": "Allow",
		"Principal": "*",
		"Action": "s3:GetObject",
		"Resource": "arn:aws:s3:::%s/*"
	}]
}`, bucket)
}
