package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/studentdesk/studentdesk/internal/app/controllers"
	"github.com/studentdesk/studentdesk/internal/app/models"
	"github.com/studentdesk/studentdesk/internal/app/services"
	"github.com/studentdesk/studentdesk/internal/middleware"
	"github.com/studentdesk/studentdesk/internal/pkg/apperrors"
	"github.com/studentdesk/studentdesk/internal/session"
)

const testCookieName = "studentdesk_sid"

type fakeUserRepository struct {
	users  map[string]*models.User
	nextID int64
}

func (r *fakeUserRepository) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.ErrAccountExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	for _, existing := range r.users {
		if existing.Username == username || existing.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeStudentRepository struct {
	students map[int64]*models.Student
	nextID   int64
}

func (r *fakeStudentRepository) GetAll(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for id := r.nextID - 1; id >= 1; id-- {
		if s, ok := r.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepository) Create(_ context.Context, student *models.Student) error {
	student.ID = r.nextID
	r.nextID++
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepository) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

type testApp struct {
	router   *gin.Engine
	sessions *session.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	sessions := session.NewStore(24 * time.Hour)

	authService := services.NewAuthService(&fakeUserRepository{users: map[string]*models.User{}, nextID: 1}, logger)
	studentService := services.NewStudentService(&fakeStudentRepository{students: map[int64]*models.Student{}, nextID: 1})

	cookie := controllers.CookieSettings{Name: testCookieName, TTL: 24 * time.Hour}
	authController := controllers.NewAuthController(authService, sessions, cookie, logger)
	studentController := controllers.NewStudentController(studentService, logger)
	authMiddleware := middleware.NewAuthMiddleware(sessions, testCookieName)

	router := gin.New()

	// /health is wired separately in these tests; it needs a live pool
	auth := router.Group("/api/auth")
	{
		auth.GET("/status", authController.Status)
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	students := router.Group("/students")
	students.Use(authMiddleware.RequireSession())
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	return &testApp{router: router, sessions: sessions}
}

func (a *testApp) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the session cookie from a response, failing the test
// when it is absent.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("response carries no session cookie")
	return nil
}

func (a *testApp) signup(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/signup",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body: %s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func TestSignupEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		User    struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.User.Username != "alice" || resp.User.Email != "alice@example.com" {
		t.Errorf("response = %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret1") {
		t.Error("response leaks the password")
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("session cookie is not HTTP-only")
	}
	if app.sessions.Len() != 1 {
		t.Errorf("store has %d sessions, want 1", app.sessions.Len())
	}
}

func TestSignupDuplicateEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"other@example.com","password":"secret1"}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Errorf("body = %s, want duplicate account message", w.Body.String())
	}
}

func TestSignupMalformedJSON(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup", `{"username":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret1")

	// Wrong password is rejected and creates no session
	before := app.sessions.Len()
	w := app.do(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrongpass"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong-password status = %d, want 401, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid username or password") {
		t.Errorf("body = %s, want invalid credentials message", w.Body.String())
	}
	if app.sessions.Len() != before {
		t.Error("failed login mutated the session store")
	}

	// Correct credentials log in and set a fresh cookie
	w = app.do(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)

	// Status reflects the session
	w = app.do(t, http.MethodGet, "/api/auth/status", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":true`) ||
		!strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Errorf("status body = %s", w.Body.String())
	}
}

func TestStatusWithoutSession(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/auth/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":false`) {
		t.Errorf("body = %s, want unauthenticated", w.Body.String())
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if app.sessions.Len() != 0 {
		t.Errorf("store has %d sessions after logout, want 0", app.sessions.Len())
	}

	// The old token no longer opens protected routes
	w = app.do(t, http.MethodGet, "/students", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout protected status = %d, want 401", w.Code)
	}

	// Logging out again is harmless
	w = app.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat logout status = %d, want 200", w.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/students", ""},
		{http.MethodPost, "/students", `{"name":"Bob","age":20,"course":"CS","year":2,"gender":"male"}`},
		{http.MethodPut, "/students/1", `{"name":"Bob","age":20,"course":"CS","year":2,"gender":"male"}`},
		{http.MethodDelete, "/students/1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := app.do(t, tt.method, tt.path, tt.body, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401, body: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "Please login first") {
				t.Errorf("body = %s, want login prompt", w.Body.String())
			}
		})
	}
}

func TestStudentCRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	// Empty list serializes as an array, not null
	w := app.do(t, http.MethodGet, "/students", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list body = %s, want []", w.Body.String())
	}

	// Create accepts numeric strings for age and year
	w = app.do(t, http.MethodPost, "/students",
		`{"name":"Bob","age":"20","course":"Computer Science","year":2,"gender":"male"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", w.Code, w.Body.String())
	}
	var created models.Student
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created record: %v", err)
	}
	if created.ID == 0 || created.Name != "Bob" || created.Age != 20 || created.Year != 2 {
		t.Fatalf("created = %+v", created)
	}

	// Update echoes the rewritten record
	w = app.do(t, http.MethodPut, "/students/1",
		`{"name":"Bob Updated","age":21,"course":"Computer Science","year":3,"gender":"male"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", w.Code, w.Body.String())
	}
	var updated models.Student
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding updated record: %v", err)
	}
	if updated.Name != "Bob Updated" || updated.Age != 21 || updated.Year != 3 {
		t.Fatalf("updated = %+v", updated)
	}

	// Delete answers 204 with no body
	w = app.do(t, http.MethodDelete, "/students/1", "", cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("delete body = %s, want empty", w.Body.String())
	}

	// The record is gone
	w = app.do(t, http.MethodGet, "/students", "", cookie)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("list after delete = %s, want []", w.Body.String())
	}
}

func TestCreateStudentRejectsNonNumericAge(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/students",
		`{"name":"Bob","age":"abc","course":"CS","year":2,"gender":"male"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Age and year must be valid numbers") {
		t.Errorf("body = %s, want numeric validation message", w.Body.String())
	}
}

func TestCreateStudentMissingFields(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/students",
		`{"name":"Bob","course":"CS"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "All fields are required") {
		t.Errorf("body = %s, want presence validation message", w.Body.String())
	}
}

func TestUpdateStudentNotFound(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodPut, "/students/999",
		`{"name":"Bob","age":20,"course":"CS","year":2,"gender":"male"}`, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Student not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestStudentIDMustBeNumeric(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodDelete, "/students/abc", "", cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Student ID must be a valid number") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDeleteStudentNotFound(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "alice", "alice@example.com", "secret1")

	w := app.do(t, http.MethodDelete, "/students/999", "", cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}
