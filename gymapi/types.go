package gymapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString holds an id or label the API may send either as a JSON string or a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("gymapi: %s is neither a string nor a number", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and whichever role-specific ids the account holds.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	Role        string     `json:"role"`
	MemberID    FlexString `json:"member_id,omitempty"`
	TrainerID   FlexString `json:"trainer_id,omitempty"`
	AdminID     FlexString `json:"admin_id,omitempty"`
	Message     string     `json:"message,omitempty"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

type Class struct {
	ID          FlexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TrainerID   FlexString `json:"trainer_id,omitempty"`
}

type CreateClassRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AssignMemberRequest struct {
	MemberID string `json:"member_id"`
	ClassID  string `json:"class_id"`
}

// ClassSummary is the class projection embedded in a booking
type ClassSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Booking struct {
	ID        FlexString   `json:"id"`
	ClassID   FlexString   `json:"class_id,omitempty"`
	Class     ClassSummary `json:"class_"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	MemberID  FlexString   `json:"member_id,omitempty"`
	TrainerID FlexString   `json:"trainer_id,omitempty"`
}

type BookClassRequest struct {
	ClassID   string `json:"class_id"`
	TrainerID string `json:"trainer_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BookClassResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Member struct {
	ID    FlexString `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  FlexString `json:"role"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type WorkoutPlan struct {
	ID          FlexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TrainerID   FlexString `json:"trainer_id,omitempty"`
}

type CreateWorkoutPlanRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TrainerID   string `json:"trainer_id"`
}

type ProgressLog struct {
	ID     FlexString `json:"id"`
	Weight FlexString `json:"weight"`
	Reps   FlexString `json:"reps"`
	Sets   FlexString `json:"sets"`
	Date   string     `json:"date"`
}

type ProgressEntry struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Sets   int     `json:"sets"`
}
