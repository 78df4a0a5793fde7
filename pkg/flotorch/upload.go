package flotorch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/pkg/httpclient"
)

// ErrMissingUploadURL is returned when a presigned object carries no URL.
var ErrMissingUploadURL = errors.New("flotorch: presigned url is empty")

// UploadToPresignedURL PUTs r directly to the storage URL issued by GetPresignedUploadURL.
func (c *Client) UploadToPresignedURL(ctx context.Context, target domain.PresignedObject, r io.Reader, contentType string) error {
	if strings.TrimSpace(target.PresignedURL) == "" {
		return ErrMissingUploadURL
	}
	req := httpclient.Request{
		Method:  http.MethodPut,
		Path:    target.PresignedURL,
		RawBody: r,
	}
	if contentType != "" {
		req.Headers = map[string]string{"Content-Type": contentType}
	}
	_, err := c.http.Do(ctx, req)
	return err
}
