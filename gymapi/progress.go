package gymapi

import (
	"context"
	"net/url"
)

func (c *Client) ListProgress(ctx context.Context, token, memberID string) ([]ProgressLog, error) {
	var logs []ProgressLog
	if err := c.get(ctx, token, "/progress/"+url.PathEscape(memberID), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) LogProgress(ctx context.Context, token string, entry ProgressEntry) error {
	return c.post(ctx, token, "/log-progress", entry, nil)
}

func (c *Client) UpdateProgress(ctx context.Context, token, id string, entry ProgressEntry) error {
	return c.put(ctx, token, "/progress/"+url.PathEscape(id), entry, nil)
}
