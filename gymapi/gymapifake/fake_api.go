// Package gymapifake is an in-memory stand-in for the GymBuddy REST API, served over net/http for tests.
package gymapifake

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/gymbuddy-web/gymapi"
)

var signingKey = []byte("gymapifake-signing-key")

// User is an account known to the fake
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	MemberID  string
	TrainerID string
	AdminID   string
}

type failure struct {
	status  int
	message string
}

type API struct {
	lock     sync.Mutex
	users    map[string]*User  // email -> user
	tokens   map[string]string // token -> email
	classes  []gymapi.Class
	bookings []gymapi.Booking
	members  []gymapi.Member
	plans    []gymapi.WorkoutPlan
	progress map[string][]gymapi.ProgressLog // member id -> logs
	calls    map[string]int
	requests map[string]json.RawMessage
	failures map[string]failure
	nextID   int
	mux      *http.ServeMux
}

func New() *API {
	a := &API{
		users:    make(map[string]*User),
		tokens:   make(map[string]string),
		progress: make(map[string][]gymapi.ProgressLog),
		calls:    make(map[string]int),
		requests: make(map[string]json.RawMessage),
		failures: make(map[string]failure),
		nextID:   100,
		mux:      http.NewServeMux(),
	}
	a.routes()
	return a
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *API) routes() {
	a.handle("POST /login", false, a.login)
	a.handle("POST /sign-up", false, a.signUp)
	a.handle("GET /class", true, a.listClasses)
	a.handle("POST /class", true, a.createClass)
	a.handle("POST /assign_member_to_class", true, a.assignMember)
	a.handle("GET /bookings", true, a.listBookings)
	a.handle("POST /book-class", true, a.bookClass)
	a.handle("GET /members", true, a.listMembers)
	a.handle("DELETE /members/{id}", true, a.deleteMember)
	a.handle("PUT /members/{id}", true, a.updateMember)
	a.handle("POST /workout-plan", true, a.createWorkoutPlan)
	a.handle("GET /workout-plans", true, a.listWorkoutPlans)
	a.handle("GET /progress/{member_id}", true, a.listProgress)
	a.handle("POST /log-progress", true, a.logProgress)
	a.handle("PUT /progress/{id}", true, a.updateProgress)
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user *User)

// handle registers h under pattern, counting calls, applying injected failures and, when auth is set,
// resolving the bearer token to a user.
func (a *API) handle(pattern string, auth bool, h authedHandler) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		a.calls[pattern]++
		f, failing := a.failures[pattern]
		a.lock.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]string{"msg": f.message})
			return
		}

		var user *User
		if auth {
			var ok bool
			if user, ok = a.userForRequest(r); !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
				return
			}
		}
		h(w, r, user)
	})
}

func (a *API) userForRequest(r *http.Request) (*User, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	email, ok := a.tokens[token]
	if !ok {
		return nil, false
	}
	return a.users[email], true
}

// AddUser registers an account that can log in
func (a *API) AddUser(u User) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if u.ID == "" {
		u.ID = a.newIDLocked()
	}
	a.users[u.Email] = &u
}

func (a *API) AddClass(c gymapi.Class) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.classes = append(a.classes, c)
}

func (a *API) AddMember(m gymapi.Member) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.members = append(a.members, m)
}

func (a *API) AddBooking(b gymapi.Booking) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.bookings = append(a.bookings, b)
}

func (a *API) AddWorkoutPlan(p gymapi.WorkoutPlan) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.plans = append(a.plans, p)
}

func (a *API) AddProgress(memberID string, l gymapi.ProgressLog) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.progress[memberID] = append(a.progress[memberID], l)
}

// Fail makes every request matching pattern (e.g. "DELETE /members/{id}") answer status with msg.
func (a *API) Fail(pattern string, status int, msg string) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.failures[pattern] = failure{status: status, message: msg}
}

// Calls returns how many requests matched pattern
func (a *API) Calls(pattern string) int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.calls[pattern]
}

// LastRequest returns the JSON body of the last request matching pattern
func (a *API) LastRequest(pattern string) json.RawMessage {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.requests[pattern]
}

func (a *API) Members() []gymapi.Member {
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]gymapi.Member(nil), a.members...)
}

func (a *API) Bookings() []gymapi.Booking {
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]gymapi.Booking(nil), a.bookings...)
}

func (a *API) Classes() []gymapi.Class {
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]gymapi.Class(nil), a.classes...)
}

func (a *API) Progress(memberID string) []gymapi.ProgressLog {
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]gymapi.ProgressLog(nil), a.progress[memberID]...)
}

func (a *API) issueTokenLocked(u *User) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"iat":  time.Now().Unix(),
		"jti":  a.newIDLocked(),
	}).SignedString(signingKey)
	if err != nil {
		return "", err
	}
	a.tokens[token] = u.Email
	return token, nil
}

func (a *API) newIDLocked() string {
	a.nextID++
	return strconv.Itoa(a.nextID)
}

func (a *API) recordRequest(pattern string, body []byte) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.requests[pattern] = append(json.RawMessage(nil), body...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
