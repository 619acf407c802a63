// Package s3 contributes the 's3' adapter: file transfer against pre-signed
// S3 URLs. No AWS credentials are handled here; the URLs carry the
// authorization.
package s3

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
)

// Module implements the registry.Provider interface for this package.
type Module struct{}

// httpClient is shared across all transfers to reuse TCP connections.
var httpClient = &http.Client{}

// Declare identifies the 's3' adapter.
func (m *Module) Declare() registry.Declaration {
	return registry.Declaration{Name: "s3", Version: "0.9.0", ConfigTag: "ADAPTER_S3"}
}

// Methods lists the adapter's dispatchable functions.
func (m *Module) Methods() []registry.Method {
	return []registry.Method{
		{Name: "Upload", Fn: Upload},
		{Name: "Download", Fn: Download},
	}
}

// Upload PUTs a local file to a pre-signed URL and returns the response
// status line.
func Upload(ctx context.Context, sourcePath, uploadURL string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("adapter", "s3", "action", "upload")

	file, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file '%s': %w", sourcePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to get file stats for '%s': %w", sourcePath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, file)
	if err != nil {
		return "", fmt.Errorf("failed to create S3 upload request: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(sourcePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	logger.Info("Uploading file to S3", "source", sourcePath, "size", stat.Size(), "contentType", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute S3 upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("S3 upload failed with status: %s", resp.Status)
	}

	logger.Info("Successfully uploaded file", "status", resp.Status)
	return resp.Status, nil
}

// Download GETs a pre-signed URL into a local file, creating parent
// directories as needed.
func Download(ctx context.Context, downloadURL, destPath string) error {
	logger := ctxlog.FromContext(ctx).With("adapter", "s3", "action", "download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create S3 download request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute S3 download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("S3 download failed with status: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file '%s': %w", destPath, err)
	}
	defer out.Close()

	written, err := out.ReadFrom(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write downloaded content: %w", err)
	}

	logger.Info("Successfully downloaded file", "dest", destPath, "bytes", written)
	return nil
}
