package gymapi

import "context"

func (c *Client) ListClasses(ctx context.Context, token string) ([]Class, error) {
	var envelope struct {
		Classes []Class `json:"classes"`
	}
	if err := c.get(ctx, token, "/class", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Classes, nil
}

func (c *Client) CreateClass(ctx context.Context, token string, req CreateClassRequest) (Class, error) {
	var envelope struct {
		Class Class `json:"class"`
	}
	if err := c.post(ctx, token, "/class", req, &envelope); err != nil {
		return Class{}, err
	}
	return envelope.Class, nil
}

func (c *Client) AssignMemberToClass(ctx context.Context, token string, req AssignMemberRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, token, "/assign_member_to_class", req, &resp); err != nil {
		return MessageResponse{}, err
	}
	return resp, nil
}
