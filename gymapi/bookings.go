package gymapi

import (
	"context"
	"net/url"
)

// BookingFilter narrows GET /bookings to one member or one trainer. Empty fields are omitted.
type BookingFilter struct {
	MemberID  string
	TrainerID string
}

func (f BookingFilter) query() url.Values {
	q := url.Values{}
	if f.MemberID != "" {
		q.Set("member_id", f.MemberID)
	}
	if f.TrainerID != "" {
		q.Set("trainer_id", f.TrainerID)
	}
	return q
}

func (c *Client) ListBookings(ctx context.Context, token string, filter BookingFilter) ([]Booking, error) {
	var envelope struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.get(ctx, token, "/bookings", filter.query(), &envelope); err != nil {
		return nil, err
	}
	return envelope.Bookings, nil
}

// BookClass returns the server's verdict. A 2xx response may still carry Success=false.
func (c *Client) BookClass(ctx context.Context, token string, req BookClassRequest) (BookClassResponse, error) {
	var resp BookClassResponse
	if err := c.post(ctx, token, "/book-class", req, &resp); err != nil {
		return BookClassResponse{}, err
	}
	return resp, nil
}
