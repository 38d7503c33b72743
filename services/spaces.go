package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// SpacesService stores recipe images in an S3-compatible Spaces bucket.
type SpacesService struct {
	client     *s3.Client
	bucket     string
	region     string
	RecipeRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, recipeRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	return &SpacesService{
		client:     s3.NewFromConfig(cfg),
		bucket:     bucket,
		region:     region,
		RecipeRoot: strings.TrimPrefix(recipeRoot, "/"),
	}
}

// UploadRecipeImage stores the image under a uuid-named key scoped to
// the owning user and returns the object key and its public URL.
func (s *SpacesService) UploadRecipeImage(ctx context.Context, userID int64, filename string, data []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%d/%s%s", s.RecipeRoot, userID, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentTypeForExt(ext)),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, s.PublicURL(key), nil
}

// DeleteRecipeImage removes a previously uploaded image. A missing
// object is not an error.
func (s *SpacesService) DeleteRecipeImage(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}

func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
