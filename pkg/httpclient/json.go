package httpclient

import (
	"context"
	"encoding/json"
)

// DoJSON issues req and decodes the JSON response body into T.
func DoJSON[T any](ctx context.Context, c Client, req Request) (T, error) {
	var out T
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, &DecodeError{URL: req.Path, Body: resp.Body(), Err: err}
	}
	return out, nil
}
