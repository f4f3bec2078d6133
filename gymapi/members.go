package gymapi

import (
	"context"
	"net/url"
)

func memberPath(id string) string {
	return "/members/" + url.PathEscape(id)
}

// ListMembers returns every member. Callers without the right role get a 403 APIError.
func (c *Client) ListMembers(ctx context.Context, token string) ([]Member, error) {
	var members []Member
	if err := c.get(ctx, token, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) DeleteMember(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, memberPath(id))
}

func (c *Client) UpdateMember(ctx context.Context, token, id string, req UpdateMemberRequest) error {
	return c.put(ctx, token, memberPath(id), req, nil)
}
