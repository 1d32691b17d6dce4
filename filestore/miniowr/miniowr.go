// Package miniowr provides a MinIO implementation of the filestore.FileStore interface.
package miniowr

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/forja-labs/pkg/filestore"
)

var _ filestore.FileStore = (*Client)(nil)

// Client implements the filestore.FileStore interface using MinIO.
type Client struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// New creates a new MinIO filestore client.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Client{
		client:      client,
		bucket:      cfg.Bucket,
		maxFileSize: cfg.MaxFileSize,
	}, nil
}

// Upload uploads a file to the specified path.
// Content type is detected from the file content.
func (c *Client) Upload(ctx context.Context, path string, reader io.Reader) (*filestore.FileInfo, error) {
	// Read content into buffer to detect content type and get size
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return nil, errx.New("file size exceeds maximum allowed size",
			errx.WithCode(filestore.CodeFileTooLarge),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{
				"size":     len(data),
				"max_size": c.maxFileSize,
			}),
		)
	}

	contentType := http.DetectContentType(data)

	return c.putObject(ctx, path, data, contentType)
}

// Get retrieves a file and its metadata from the specified path.
func (c *Client) Get(ctx context.Context, path string) (*filestore.File, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, c.wrapMinioError(err)
	}

	return &filestore.File{
		Content: obj,
		Info: filestore.FileInfo{
			Path:         path,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			LastModified: stat.LastModified,
		},
	}, nil
}

// Delete removes a file at the specified path.
func (c *Client) Delete(ctx context.Context, path string) error {
	err := c.client.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return c.wrapMinioError(err)
	}
	return nil
}

// Exists checks if a file exists at the specified path.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == codeNoSuchKey || errResp.Code == codeNotFound {
			return false, nil
		}
		return false, errx.Wrap(err)
	}
	return true, nil
}

// PresignedURL generates a time-limited download URL for the file at the
// specified path.
func (c *Client) PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	u, err := c.client.PresignedGetObject(ctx, c.bucket, path, expiry, nil)
	if err != nil {
		return "", errx.Wrap(err)
	}
	return u.String(), nil
}

func (c *Client) putObject(ctx context.Context, path string, data []byte, contentType string) (*filestore.FileInfo, error) {
	info, err := c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &filestore.FileInfo{
		Path:         path,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// wrapMinioError converts MinIO errors to filestore error codes.
func (c *Client) wrapMinioError(err error) error {
	errResp := minio.ToErrorResponse(err)
	if errResp.Code == codeNoSuchKey || errResp.Code == codeNotFound {
		return errx.New("file not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
		)
	}
	return errx.Wrap(err)
}

const (
	codeNoSuchKey = "NoSuchKey"
	codeNotFound  = "NotFound"
)
