package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"jira_notifier/internal/model"
)

// MetadataStore defines the interface for metadata snapshot operations.
// Snapshots are written by the poller that talks to the Jira API; this
// service only reads them to derive filter catalogs.
type MetadataStore interface {
	GetMetadata(ctx context.Context, projectKey string) (*model.IssueMetadata, error)
	SetMetadata(ctx context.Context, projectKey string, metadata *model.IssueMetadata) error
}

// S3MetadataStore implements MetadataStore using AWS S3
type S3MetadataStore struct {
	client     *s3.Client
	bucketName string
}

// NewS3MetadataStore creates a new S3MetadataStore instance
func NewS3MetadataStore(client *s3.Client, bucketName string) *S3MetadataStore {
	return &S3MetadataStore{
		client:     client,
		bucketName: bucketName,
	}
}

// GetMetadata retrieves the metadata snapshot for the given project key.
// A missing snapshot is not an error: it returns (nil, nil) and callers
// render an empty catalog.
func (s *S3MetadataStore) GetMetadata(ctx context.Context, projectKey string) (*model.IssueMetadata, error) {
	key := s.getKey(projectKey)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata from S3: %v", err)
	}
	defer result.Body.Close()

	var metadata model.IssueMetadata
	if err := json.NewDecoder(result.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata snapshot: %v", err)
	}

	return &metadata, nil
}

// SetMetadata stores a metadata snapshot for the given project key
func (s *S3MetadataStore) SetMetadata(ctx context.Context, projectKey string, metadata *model.IssueMetadata) error {
	key := s.getKey(projectKey)

	jsonData, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata snapshot: %v", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to store metadata in S3: %v", err)
	}

	return nil
}

// getKey generates the S3 key for a project's metadata snapshot
func (s *S3MetadataStore) getKey(projectKey string) string {
	return fmt.Sprintf("metadata/%s.json", projectKey)
}
