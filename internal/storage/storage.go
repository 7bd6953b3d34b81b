// Package storage uploads order artifacts (reference images, cover images,
// print-ready PDFs) to a Supabase storage bucket and serves their public URLs.
package storage

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewClient(supabaseURL, serviceRoleKey, bucket string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		now:     time.Now,
	}, nil
}

// Upload stores a file under the order's prefix. The timestamp in the path
// keeps repeat uploads of the same filename from colliding.
func (c *Client) Upload(orderID uuid.UUID, filename string, data []byte) (models.FileRef, error) {
	storagePath := fmt.Sprintf("public/%s/%d-%s", orderID.String(), c.now().UnixMilli(), filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := true
	_, err := c.client.UploadFile(c.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return models.FileRef{}, fmt.Errorf("failed to upload file: %w", err)
	}

	return models.FileRef{
		Name: filename,
		URL:  c.PublicURL(storagePath),
	}, nil
}

func (c *Client) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, storagePath)
}

// DeleteOrderFiles removes everything under the order's storage prefix.
func (c *Client) DeleteOrderFiles(orderID uuid.UUID) error {
	prefix := fmt.Sprintf("public/%s/", orderID.String())

	files, err := c.client.ListFiles(c.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		if _, err := c.client.RemoveFile(c.bucket, filePaths); err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}
