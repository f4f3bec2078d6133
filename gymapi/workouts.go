package gymapi

import "context"

func (c *Client) CreateWorkoutPlan(ctx context.Context, token string, req CreateWorkoutPlanRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, token, "/workout-plan", req, &resp); err != nil {
		return MessageResponse{}, err
	}
	return resp, nil
}

func (c *Client) ListWorkoutPlans(ctx context.Context, token string) ([]WorkoutPlan, error) {
	var envelope struct {
		WorkoutPlans []WorkoutPlan `json:"workout_plans"`
	}
	if err := c.get(ctx, token, "/workout-plans", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.WorkoutPlans, nil
}
