package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSService stores license documents in Google Cloud Storage
type GCSService struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

// NewGCSService creates a new Google Cloud Storage service
func NewGCSService(ctx context.Context, bucketName, projectID, credentialsPath string) (*GCSService, error) {
	var client *storage.Client
	var err error

	if credentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsPath))
	} else {
		// Use default credentials (for GCE, Cloud Run, etc.)
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSService{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

// Close closes the GCS client
func (s *GCSService) Close() error {
	return s.client.Close()
}

// Upload stores a license document. The extension allow-list mirrors what
// the form accepts; a payload that slips past form validation is still
// rejected here. 10MB max per document.
func (s *GCSService) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	const maxFileSize = 10 * 1024 * 1024 // 10MB
	if len(data) > maxFileSize {
		return "", fmt.Errorf("file size %d exceeds maximum allowed size of %d bytes", len(data), maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(objectPath))
	allowedExtensions := map[string]bool{
		".pdf":  true,
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".tiff": true,
	}

	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %s not allowed. Allowed types: PDF, JPG, PNG, TIFF", ext)
	}

	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	writer := obj.NewWriter(ctx)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return objectPath, nil
}

// SignedURL generates a signed URL for accessing a private document
func (s *GCSService) SignedURL(ctx context.Context, objectPath string, expiration time.Duration) (string, error) {
	// Remove gs:// prefix if present
	objectPath = strings.TrimPrefix(objectPath, fmt.Sprintf("gs://%s/", s.bucketName))

	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiration),
	}

	url, err := s.client.Bucket(s.bucketName).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

// PublicURL returns the direct non-expiring URL for a public-bucket object,
// used by the CSV export where signed URLs would go stale.
func (s *GCSService) PublicURL(objectPath string) string {
	objectPath = strings.TrimPrefix(objectPath, fmt.Sprintf("gs://%s/", s.bucketName))
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectPath)
}

// Delete deletes a document from Google Cloud Storage
func (s *GCSService) Delete(ctx context.Context, objectPath string) error {
	// Remove gs:// prefix if present
	objectPath = strings.TrimPrefix(objectPath, fmt.Sprintf("gs://%s/", s.bucketName))

	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// BuildLicenseDocumentPath derives the stored filename for a state license
// document: business id + state code + timestamp, flat at the bucket root.
func BuildLicenseDocumentPath(businessID, stateCode, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("%s_%s_%d%s", businessID, stateCode, time.Now().Unix(), ext)
}
