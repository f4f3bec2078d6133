package gymapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/gymapi/gymapifake"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	trainerEmail    = "tina@gym.test"
	trainerPassword = "trainer-pass"
	memberEmail     = "mo@gym.test"
	memberPassword  = "member-pass"
)

type testFixture struct {
	fake   *gymapifake.API
	client *gymapi.Client
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	fake := gymapifake.New()
	fake.AddUser(gymapifake.User{Name: "Tina", Email: trainerEmail, Password: trainerPassword, Role: "Trainer", TrainerID: "7"})
	fake.AddUser(gymapifake.User{Name: "Mo", Email: memberEmail, Password: memberPassword, Role: "Member", MemberID: "3"})
	fake.AddClass(gymapi.Class{ID: "1", Name: "Spin", Description: "Indoor cycling", TrainerID: "7"})

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return &testFixture{fake: fake, client: gymapi.New(srv.URL + "/")}
}

func (f *testFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, err := f.client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range handlers {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeTestJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("success returns token, role and only the ids the account holds", func(t *testing.T) {
		resp, err := f.client.Login(ctx, memberEmail, memberPassword)
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
		require.Equal(t, "Member", resp.Role)
		require.Equal(t, gymapi.FlexString("3"), resp.MemberID)
		require.Empty(t, resp.TrainerID)
		require.Empty(t, resp.AdminID)
	})

	t.Run("bad credentials surface the server message", func(t *testing.T) {
		_, err := f.client.Login(ctx, memberEmail, "wrong")
		require.Error(t, err)
		require.Equal(t, http.StatusUnauthorized, gymapi.StatusCode(err))
		require.Equal(t, "Invalid email or password", gymapi.Message(err))
	})
}

func TestBearerHeader(t *testing.T) {
	var gotAuth []string
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"POST /login": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = append(gotAuth, r.Header.Get("Authorization"))
			writeTestJSON(w, http.StatusOK, `{"access_token":"abc","role":"Admin","admin_id":12}`)
		},
		"GET /class": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = append(gotAuth, r.Header.Get("Authorization"))
			writeTestJSON(w, http.StatusOK, `{"classes":[{"id":4,"name":"Yoga","trainer_id":"9"}]}`)
		},
	})
	c := gymapi.New(srv.URL)

	resp, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, gymapi.FlexString("12"), resp.AdminID)

	classes, err := c.ListClasses(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Equal(t, gymapi.FlexString("4"), classes[0].ID)
	require.Equal(t, gymapi.FlexString("9"), classes[0].TrainerID)

	require.Equal(t, []string{"", "Bearer abc"}, gotAuth)
}

func TestAPIErrorMessageFields(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /members": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusForbidden, `{"msg":"Access denied"}`)
		},
		"POST /workout-plan": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusBadRequest, `{"error":"bad plan"}`)
		},
		"DELETE /members/{id}": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		},
	})
	c := gymapi.New(srv.URL)
	ctx := context.Background()

	_, err := c.ListMembers(ctx, "tok")
	require.True(t, gymapi.IsForbidden(err))
	require.Equal(t, "Access denied", gymapi.Message(err))

	_, err = c.CreateWorkoutPlan(ctx, "tok", gymapi.CreateWorkoutPlanRequest{Name: "x"})
	require.Equal(t, "bad plan", gymapi.Message(err))

	err = c.DeleteMember(ctx, "tok", "5")
	require.Equal(t, http.StatusInternalServerError, gymapi.StatusCode(err))
	require.Empty(t, gymapi.Message(err))
	require.EqualError(t, err, "gymapi: DELETE /members/5 returned 500")
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := gymapi.New(url).ListClasses(context.Background(), "tok")
	require.Error(t, err)
	require.Zero(t, gymapi.StatusCode(err))
	require.False(t, gymapi.IsForbidden(err))
}

func TestTimeout(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /class": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
	})

	t.Run("default client", func(t *testing.T) {
		_, err := gymapi.New(srv.URL, gymapi.WithTimeout(50*time.Millisecond)).ListClasses(context.Background(), "tok")
		require.Error(t, err)
		require.Zero(t, gymapi.StatusCode(err))
	})

	for name, opts := range map[string]func(hc *http.Client) []gymapi.Option{
		"timeout after custom client": func(hc *http.Client) []gymapi.Option {
			return []gymapi.Option{gymapi.WithHTTPClient(hc), gymapi.WithTimeout(50 * time.Millisecond)}
		},
		"timeout before custom client": func(hc *http.Client) []gymapi.Option {
			return []gymapi.Option{gymapi.WithTimeout(50 * time.Millisecond), gymapi.WithHTTPClient(hc)}
		},
	} {
		t.Run(name, func(t *testing.T) {
			hc := &http.Client{}
			_, err := gymapi.New(srv.URL, opts(hc)...).ListClasses(context.Background(), "tok")
			require.Error(t, err)
			require.Zero(t, gymapi.StatusCode(err))
			require.Zero(t, hc.Timeout)
		})
	}
}

func TestResponseSizeLimit(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /class": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"classes":[],"pad":"`))
			_, _ = w.Write(bytes.Repeat([]byte("x"), 5<<20))
			_, _ = w.Write([]byte(`"}`))
		},
	})

	_, err := gymapi.New(srv.URL).ListClasses(context.Background(), "tok")
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds")
}

func TestLoginWithoutToken(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"POST /login": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, `{"role":"Member","message":"ok"}`)
		},
	})

	_, err := gymapi.New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, errors.ErrUnexpectedResponse)
	require.Zero(t, gymapi.StatusCode(err))
}

func TestBookings(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	token := f.login(t, memberEmail, memberPassword)

	resp, err := f.client.BookClass(ctx, token, gymapi.BookClassRequest{ClassID: "1", TrainerID: "7", StartTime: "2025-01-01T10:00", EndTime: "2025-01-01T11:00"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = f.client.BookClass(ctx, token, gymapi.BookClassRequest{ClassID: "999", TrainerID: "7", StartTime: "a", EndTime: "b"})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "Class is not available", resp.Message)

	mine, err := f.client.ListBookings(ctx, token, gymapi.BookingFilter{MemberID: "3"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Spin", mine[0].Class.Name)

	others, err := f.client.ListBookings(ctx, token, gymapi.BookingFilter{MemberID: "4"})
	require.NoError(t, err)
	require.Empty(t, others)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(f.fake.LastRequest("POST /book-class"), &sent))
	require.Equal(t, "999", sent["class_id"])
}

func TestMembers(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.fake.AddMember(gymapi.Member{ID: "3", Name: "Mo", Email: memberEmail, Role: "Member"})
	f.fake.AddMember(gymapi.Member{ID: "4", Name: "Ann", Email: "ann@gym.test", Role: "Member"})

	t.Run("member role is forbidden", func(t *testing.T) {
		_, err := f.client.ListMembers(ctx, f.login(t, memberEmail, memberPassword))
		require.True(t, gymapi.IsForbidden(err))
	})

	token := f.login(t, trainerEmail, trainerPassword)

	t.Run("update then delete", func(t *testing.T) {
		require.NoError(t, f.client.UpdateMember(ctx, token, "4", gymapi.UpdateMemberRequest{Name: "Anne", Email: "anne@gym.test", Role: "Member"}))
		require.NoError(t, f.client.DeleteMember(ctx, token, "3"))

		members, err := f.client.ListMembers(ctx, token)
		require.NoError(t, err)
		require.Equal(t, []gymapi.Member{{ID: "4", Name: "Anne", Email: "anne@gym.test", Role: "Member"}}, members)
	})

	t.Run("delete unknown member", func(t *testing.T) {
		err := f.client.DeleteMember(ctx, token, "3")
		require.Equal(t, http.StatusNotFound, gymapi.StatusCode(err))
		require.Equal(t, "Member not found", gymapi.Message(err))
	})
}

func TestClassesAndWorkoutPlans(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	token := f.login(t, trainerEmail, trainerPassword)

	created, err := f.client.CreateClass(ctx, token, gymapi.CreateClassRequest{Name: "HIIT", Description: "Intervals"})
	require.NoError(t, err)
	require.Equal(t, "HIIT", created.Name)
	require.Equal(t, gymapi.FlexString("7"), created.TrainerID)

	classes, err := f.client.ListClasses(ctx, token)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	msg, err := f.client.AssignMemberToClass(ctx, token, gymapi.AssignMemberRequest{MemberID: "3", ClassID: created.ID.String()})
	require.NoError(t, err)
	require.NotEmpty(t, msg.Message)

	planMsg, err := f.client.CreateWorkoutPlan(ctx, token, gymapi.CreateWorkoutPlanRequest{Name: "Push", Description: "Chest day", TrainerID: "7"})
	require.NoError(t, err)
	require.Equal(t, "Workout plan created successfully", planMsg.Message)

	_, err = f.client.CreateWorkoutPlan(ctx, token, gymapi.CreateWorkoutPlanRequest{})
	require.Equal(t, "Name is required", gymapi.Message(err))

	plans, err := f.client.ListWorkoutPlans(ctx, token)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, gymapi.FlexString("7"), plans[0].TrainerID)
}

func TestProgress(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	token := f.login(t, memberEmail, memberPassword)

	require.NoError(t, f.client.LogProgress(ctx, token, gymapi.ProgressEntry{Weight: 82.5, Reps: 10, Sets: 3}))

	logs, err := f.client.ListProgress(ctx, token, "3")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, gymapi.FlexString("82.5"), logs[0].Weight)

	require.NoError(t, f.client.UpdateProgress(ctx, token, logs[0].ID.String(), gymapi.ProgressEntry{Weight: 85, Reps: 8, Sets: 4}))

	logs, err = f.client.ListProgress(ctx, token, "3")
	require.NoError(t, err)
	require.Equal(t, gymapi.FlexString("85"), logs[0].Weight)
	require.Equal(t, gymapi.FlexString("4"), logs[0].Sets)
}

func TestSignUp(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	resp, err := f.client.SignUp(ctx, gymapi.SignUpRequest{Name: "New", Email: "new@gym.test", Password: "pw", RoleID: "2"})
	require.NoError(t, err)
	require.Equal(t, "User registered successfully", resp.Message)

	login, err := f.client.Login(ctx, "new@gym.test", "pw")
	require.NoError(t, err)
	require.Equal(t, "Trainer", login.Role)
	require.NotEmpty(t, login.TrainerID)

	_, err = f.client.SignUp(ctx, gymapi.SignUpRequest{Name: "New", Email: "new@gym.test", Password: "pw"})
	require.Equal(t, http.StatusConflict, gymapi.StatusCode(err))
	require.Equal(t, "User already exists", gymapi.Message(err))
}

func TestFlexString(t *testing.T) {
	var v struct {
		A gymapi.FlexString `json:"a"`
		B gymapi.FlexString `json:"b"`
		C gymapi.FlexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":42,"c":null}`), &v))
	require.Equal(t, gymapi.FlexString("x"), v.A)
	require.Equal(t, gymapi.FlexString("42"), v.B)
	require.Empty(t, v.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
