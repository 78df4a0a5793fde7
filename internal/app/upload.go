package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/flotorch/console-client/internal/domain"
)

// ErrNothingToUpload is returned when neither a knowledge-base nor a ground-truth file is given.
var ErrNothingToUpload = errors.New("no files to upload")

// Upload requests presigned URLs and PUTs the given files to them concurrently.
// Either path may be empty. The returned PresignedUpload holds the storage
// paths to reference from a create-project body.
func (c *Console) Upload(ctx context.Context, kbPath, gtPath string) (domain.PresignedUpload, error) {
	if kbPath == "" && gtPath == "" {
		return domain.PresignedUpload{}, ErrNothingToUpload
	}

	targets, err := c.api.GetPresignedUploadURL(ctx)
	if err != nil {
		return domain.PresignedUpload{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if kbPath != "" {
		g.Go(func() error { return c.uploadFile(gctx, targets.KBData, kbPath) })
	}
	if gtPath != "" {
		g.Go(func() error { return c.uploadFile(gctx, targets.GTData, gtPath) })
	}
	if err := g.Wait(); err != nil {
		return domain.PresignedUpload{}, err
	}
	return targets, nil
}

func (c *Console) uploadFile(ctx context.Context, target domain.PresignedObject, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := c.api.UploadToPresignedURL(ctx, target, f, contentType); err != nil {
		return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	c.log.InfoObj("file uploaded", "upload", map[string]any{
		"file":         filepath.Base(path),
		"storage_path": target.Path,
		"content_type": contentType,
	})
	return nil
}
