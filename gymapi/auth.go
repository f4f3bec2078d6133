package gymapi

import (
	"context"

	"github.com/jrsteele09/gymbuddy-web/internal/errors"
)

// Login exchanges credentials for an access token. It sends no Authorization header.
// A 2xx response without an access token wraps errors.ErrUnexpectedResponse.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "", "/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return LoginResponse{}, err
	}
	if resp.AccessToken == "" {
		return LoginResponse{}, errors.Wrapf(errors.ErrUnexpectedResponse, "gymapi: POST /login: no access_token")
	}
	return resp, nil
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, "", "/sign-up", req, &resp); err != nil {
		return MessageResponse{}, err
	}
	return resp, nil
}
