package gymapifake

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
)

var signupRoles = map[string]string{"1": "Member", "2": "Trainer", "3": "Admin"}

func (a *API) decode(w http.ResponseWriter, r *http.Request, pattern string, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		a.recordRequest(pattern, body)
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Invalid JSON"})
		return false
	}
	return true
}

func (a *API) login(w http.ResponseWriter, r *http.Request, _ *User) {
	var req gymapi.LoginRequest
	if !a.decode(w, r, "POST /login", &req) {
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	u, ok := a.users[req.Email]
	if !ok || u.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	token, err := a.issueTokenLocked(u)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"msg": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gymapi.LoginResponse{
		AccessToken: token,
		Role:        u.Role,
		MemberID:    gymapi.FlexString(u.MemberID),
		TrainerID:   gymapi.FlexString(u.TrainerID),
		AdminID:     gymapi.FlexString(u.AdminID),
		Message:     "Login successful",
	})
}

func (a *API) signUp(w http.ResponseWriter, r *http.Request, _ *User) {
	var req gymapi.SignUpRequest
	if !a.decode(w, r, "POST /sign-up", &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Name, email and password are required"})
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	if _, exists := a.users[req.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}
	role, ok := signupRoles[req.RoleID]
	if !ok {
		role = "Member"
	}
	u := &User{ID: a.newIDLocked(), Name: req.Name, Email: req.Email, Password: req.Password, Role: role}
	switch role {
	case "Member":
		u.MemberID = a.newIDLocked()
	case "Trainer":
		u.TrainerID = a.newIDLocked()
	case "Admin":
		u.AdminID = a.newIDLocked()
	}
	a.users[u.Email] = u
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (a *API) listClasses(w http.ResponseWriter, _ *http.Request, _ *User) {
	writeJSON(w, http.StatusOK, map[string]any{"classes": a.Classes()})
}

func (a *API) createClass(w http.ResponseWriter, r *http.Request, u *User) {
	var req gymapi.CreateClassRequest
	if !a.decode(w, r, "POST /class", &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Name is required"})
		return
	}

	a.lock.Lock()
	c := gymapi.Class{
		ID:          gymapi.FlexString(a.newIDLocked()),
		Name:        req.Name,
		Description: req.Description,
		TrainerID:   gymapi.FlexString(u.TrainerID),
	}
	a.classes = append(a.classes, c)
	a.lock.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"class": c})
}

func (a *API) assignMember(w http.ResponseWriter, r *http.Request, _ *User) {
	var req gymapi.AssignMemberRequest
	if !a.decode(w, r, "POST /assign_member_to_class", &req) {
		return
	}
	if req.MemberID == "" || req.ClassID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "member_id and class_id are required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Member assigned to class successfully"})
}

func (a *API) listBookings(w http.ResponseWriter, r *http.Request, _ *User) {
	memberID := r.URL.Query().Get("member_id")
	trainerID := r.URL.Query().Get("trainer_id")

	bookings := []gymapi.Booking{}
	for _, b := range a.Bookings() {
		if memberID != "" && b.MemberID.String() != memberID {
			continue
		}
		if trainerID != "" && b.TrainerID.String() != trainerID {
			continue
		}
		bookings = append(bookings, b)
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (a *API) bookClass(w http.ResponseWriter, r *http.Request, u *User) {
	var req gymapi.BookClassRequest
	if !a.decode(w, r, "POST /book-class", &req) {
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	for _, c := range a.classes {
		if c.ID.String() != req.ClassID {
			continue
		}
		a.bookings = append(a.bookings, gymapi.Booking{
			ID:        gymapi.FlexString(a.newIDLocked()),
			ClassID:   c.ID,
			Class:     gymapi.ClassSummary{Name: c.Name, Description: c.Description},
			Date:      time.Now().UTC().Format(time.DateOnly),
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			MemberID:  gymapi.FlexString(u.MemberID),
			TrainerID: gymapi.FlexString(req.TrainerID),
		})
		writeJSON(w, http.StatusOK, gymapi.BookClassResponse{Success: true, Message: "Class booked"})
		return
	}
	writeJSON(w, http.StatusOK, gymapi.BookClassResponse{Success: false, Message: "Class is not available"})
}

func canManageMembers(u *User) bool {
	return u.Role == "Admin" || u.Role == "Trainer"
}

func (a *API) listMembers(w http.ResponseWriter, _ *http.Request, u *User) {
	if !canManageMembers(u) {
		writeJSON(w, http.StatusForbidden, map[string]string{"msg": "Access denied"})
		return
	}
	members := a.Members()
	if members == nil {
		members = []gymapi.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (a *API) deleteMember(w http.ResponseWriter, r *http.Request, u *User) {
	if !canManageMembers(u) {
		writeJSON(w, http.StatusForbidden, map[string]string{"msg": "Access denied"})
		return
	}
	id := r.PathValue("id")

	a.lock.Lock()
	defer a.lock.Unlock()
	for i, m := range a.members {
		if m.ID.String() == id {
			a.members = append(a.members[:i], a.members[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Member deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Member not found"})
}

func (a *API) updateMember(w http.ResponseWriter, r *http.Request, u *User) {
	if !canManageMembers(u) {
		writeJSON(w, http.StatusForbidden, map[string]string{"msg": "Access denied"})
		return
	}
	var req gymapi.UpdateMemberRequest
	if !a.decode(w, r, "PUT /members/{id}", &req) {
		return
	}
	id := r.PathValue("id")

	a.lock.Lock()
	defer a.lock.Unlock()
	for i, m := range a.members {
		if m.ID.String() == id {
			a.members[i] = gymapi.Member{ID: m.ID, Name: req.Name, Email: req.Email, Role: gymapi.FlexString(req.Role)}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Member updated"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Member not found"})
}

func (a *API) createWorkoutPlan(w http.ResponseWriter, r *http.Request, _ *User) {
	var req gymapi.CreateWorkoutPlanRequest
	if !a.decode(w, r, "POST /workout-plan", &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Name is required"})
		return
	}

	a.lock.Lock()
	a.plans = append(a.plans, gymapi.WorkoutPlan{
		ID:          gymapi.FlexString(a.newIDLocked()),
		Name:        req.Name,
		Description: req.Description,
		TrainerID:   gymapi.FlexString(req.TrainerID),
	})
	a.lock.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Workout plan created successfully"})
}

func (a *API) listWorkoutPlans(w http.ResponseWriter, _ *http.Request, _ *User) {
	a.lock.Lock()
	plans := append([]gymapi.WorkoutPlan{}, a.plans...)
	a.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"workout_plans": plans})
}

func (a *API) listProgress(w http.ResponseWriter, r *http.Request, _ *User) {
	logs := a.Progress(r.PathValue("member_id"))
	if logs == nil {
		logs = []gymapi.ProgressLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func progressLog(id string, e gymapi.ProgressEntry) gymapi.ProgressLog {
	return gymapi.ProgressLog{
		ID:     gymapi.FlexString(id),
		Weight: gymapi.FlexString(formatFloat(e.Weight)),
		Reps:   gymapi.FlexString(formatInt(e.Reps)),
		Sets:   gymapi.FlexString(formatInt(e.Sets)),
		Date:   time.Now().UTC().Format(time.DateOnly),
	}
}

func (a *API) logProgress(w http.ResponseWriter, r *http.Request, u *User) {
	var entry gymapi.ProgressEntry
	if !a.decode(w, r, "POST /log-progress", &entry) {
		return
	}

	a.lock.Lock()
	l := progressLog(a.newIDLocked(), entry)
	a.progress[u.MemberID] = append(a.progress[u.MemberID], l)
	a.lock.Unlock()

	writeJSON(w, http.StatusCreated, l)
}

func (a *API) updateProgress(w http.ResponseWriter, r *http.Request, _ *User) {
	var entry gymapi.ProgressEntry
	if !a.decode(w, r, "PUT /progress/{id}", &entry) {
		return
	}
	id := r.PathValue("id")

	a.lock.Lock()
	defer a.lock.Unlock()
	for memberID, logs := range a.progress {
		for i, l := range logs {
			if l.ID.String() == id {
				updated := progressLog(id, entry)
				updated.Date = l.Date
				a.progress[memberID][i] = updated
				writeJSON(w, http.StatusOK, updated)
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Progress log not found"})
}
