package speechapi

import (
	"context"

	"github.com/kbukum/speechkit/httpclient"
)

// Model is one entry of the platform's model listing.
type Model struct {
	Locale      string `json:"locale"`
	DisplayName string `json:"displayName"`
}

// ListModels fetches the base models. Locales are derived from them.
func (c *Client) ListModels(ctx context.Context) (models []Model, err error) {
	ctx, end := c.observe(ctx, "list_models")
	defer func() { end(err) }()

	resp, err := httpclient.Get[page[Model]](c.http, ctx, c.cfg.ModelsURL())
	if err != nil {
		return nil, c.platformError("list_models", err)
	}
	return resp.Data.Values, nil
}
