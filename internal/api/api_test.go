package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/cache"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
	"github.com/tcp_snm/problemhub/internal/service/auth_service"
	"github.com/tcp_snm/problemhub/internal/service/otp_service"
	"github.com/tcp_snm/problemhub/internal/service/pending_service"
	"github.com/tcp_snm/problemhub/middleware"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	os.Exit(m.Run())
}

type memAdmins struct {
	sync.Mutex
	admins map[string]database.Admin
}

func (m *memAdmins) GetAdminByEmail(_ context.Context, email string) (database.Admin, error) {
	m.Lock()
	defer m.Unlock()
	admin, ok := m.admins[email]
	if !ok {
		return database.Admin{}, pgx.ErrNoRows
	}
	return admin, nil
}

func (m *memAdmins) GetAdminByID(_ context.Context, adminID uuid.UUID) (database.Admin, error) {
	m.Lock()
	defer m.Unlock()
	for _, admin := range m.admins {
		if admin.AdminID == adminID {
			return admin, nil
		}
	}
	return database.Admin{}, pgx.ErrNoRows
}

func (m *memAdmins) CreateAdmin(_ context.Context, arg database.CreateAdminParams) (database.Admin, error) {
	m.Lock()
	defer m.Unlock()
	admin := database.Admin{
		AdminID:      arg.AdminID,
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
	}
	m.admins[arg.Email] = admin
	return admin, nil
}

func (m *memAdmins) UpdateAdminPassword(_ context.Context, adminID uuid.UUID, hash string) (int64, error) {
	return 0, nil
}

type inbox struct {
	sync.Mutex
	codes map[string]string
	err   error
}

func (i *inbox) SendOTP(_ context.Context, email string, code string) error {
	i.Lock()
	defer i.Unlock()
	if i.err != nil {
		return i.err
	}
	i.codes[email] = code
	return nil
}

func newTestRouter() (http.Handler, *inbox) {
	mails := &inbox{codes: make(map[string]string)}
	a := &Api{
		AuthServiceConfig: &auth_service.AuthService{
			DB: &memAdmins{admins: make(map[string]database.Admin)},
			OTP: &otp_service.OTPService{
				Store: cache.NewExpirableStore[otp_service.OTPRecord]("otp", 10, time.Minute),
			},
			Pending: &pending_service.PendingService{
				Store: cache.NewExpirableStore[pending_service.PendingRegistration]("pending", 10, time.Minute),
			},
			Mailer: mails,
			Hasher: service.BcryptHasher{Cost: 4},
			Tokens: &service.JWTIssuer{Secret: []byte("test-secret")},
		},
	}

	router := chi.NewRouter()
	router.Post("/v1/admin/signup", a.HandlerSignUp)
	router.Post("/v1/admin/signup/verify", a.HandlerVerifySignUp)
	router.Post("/v1/admin/login", a.HandlerLogin)
	router.Post("/v1/admin/logout", a.HandlerLogout)
	return router, mails
}

func post(t *testing.T, h http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var res errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("cannot decode error body %q, %v", w.Body.String(), err)
	}
	return res.Kind
}

func TestSignUpFlow(t *testing.T) {
	router, mails := newTestRouter()

	w := post(t, router, "/v1/admin/signup", `{"name":"Ada","email":"ada@x.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}

	code := mails.codes["ada@x.com"]
	w = post(t, router, "/v1/admin/signup/verify", fmt.Sprintf(`{"email":"ada@x.com","otp":"%s"}`, code))
	if w.Code != http.StatusCreated {
		t.Fatalf("verify status = %d, body %s", w.Code, w.Body.String())
	}

	var session sessionMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatal(err)
	}
	if session.Token == "" || session.Admin.Email != "ada@x.com" || session.Admin.Name != "Ada" {
		t.Errorf("unexpected session %+v", session)
	}
	if strings.Contains(w.Body.String(), "secret1") || strings.Contains(w.Body.String(), "password") {
		t.Error("response must not carry the password")
	}
	if cookie := w.Result().Cookies(); len(cookie) == 0 || cookie[0].Name != middleware.KeyJwtSessionCookieName {
		t.Error("expected a session cookie")
	}

	// same otp again
	w = post(t, router, "/v1/admin/signup/verify", fmt.Sprintf(`{"email":"ada@x.com","otp":"%s"}`, code))
	if w.Code != http.StatusBadRequest || decodeKind(t, w) != "no_pending_signup" {
		t.Errorf("repeat verify = %d %s, want 400 no_pending_signup", w.Code, w.Body.String())
	}

	w = post(t, router, "/v1/admin/signup", `{"name":"Ada","email":"ada@x.com","password":"secret1"}`)
	if w.Code != http.StatusConflict || decodeKind(t, w) != "conflict" {
		t.Errorf("duplicate signup = %d %s, want 409 conflict", w.Code, w.Body.String())
	}

	w = post(t, router, "/v1/admin/login", `{"email":"ada@x.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Errorf("login status = %d, body %s", w.Code, w.Body.String())
	}
	w = post(t, router, "/v1/admin/login", `{"email":"ada@x.com","password":"wrong12"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestSignUpErrors(t *testing.T) {
	router, mails := newTestRouter()

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"ghost verify", "/v1/admin/signup/verify", `{"email":"ghost@x.com","otp":"000000"}`, http.StatusBadRequest, "invalid_or_expired_otp"},
		{"missing fields", "/v1/admin/signup", `{"email":"ada@x.com"}`, http.StatusBadRequest, "validation"},
		{"bad json", "/v1/admin/signup", `{"email":`, http.StatusBadRequest, "validation"},
		{"empty body", "/v1/admin/signup", ``, http.StatusBadRequest, "validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, tt.path, tt.body)
			if w.Code != tt.status || decodeKind(t, w) != tt.kind {
				t.Errorf("got %d %s, want %d %s", w.Code, w.Body.String(), tt.status, tt.kind)
			}
		})
	}

	mails.err = errors.New("smtp down")
	w := post(t, router, "/v1/admin/signup", `{"name":"Bob","email":"bob@x.com","password":"secret1"}`)
	if w.Code != http.StatusBadGateway || decodeKind(t, w) != "delivery" {
		t.Errorf("delivery failure = %d %s, want 502 delivery", w.Code, w.Body.String())
	}
}

func TestHandlerError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w, name is required", hub_errors.ErrInvalidInput), http.StatusBadRequest, "validation"},
		{hub_errors.ErrInvalidRequest, http.StatusBadRequest, "validation"},
		{hub_errors.ErrInvalidOrExpiredOTP, http.StatusBadRequest, "invalid_or_expired_otp"},
		{hub_errors.ErrNoPendingSignup, http.StatusBadRequest, "no_pending_signup"},
		{hub_errors.ErrEntityAlreadyExist, http.StatusConflict, "conflict"},
		{fmt.Errorf("%w, %w", hub_errors.ErrEmailDelivery, hub_errors.ErrInternal), http.StatusBadGateway, "delivery"},
		{hub_errors.ErrEmailServiceStopped, http.StatusServiceUnavailable, "delivery"},
		{hub_errors.ErrInvalidUserCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{hub_errors.ErrUnAuthorized, http.StatusUnauthorized, "unauthorized"},
		{hub_errors.ErrNotFound, http.StatusNotFound, "not_found"},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlerError(tt.err, w)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if kind := decodeKind(t, w); kind != tt.kind {
				t.Errorf("kind = %q, want %q", kind, tt.kind)
			}
			if tt.kind == "internal" && strings.Contains(w.Body.String(), "relation") {
				t.Error("internal details leaked into the response")
			}
		})
	}
}

func TestDecodeProblemRequestMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("title", "Two Sum")
	mw.WriteField("difficulty", "medium")
	mw.WriteField("tags", `["array","hash"]`)
	mw.WriteField("hints", `[{"text":"use a map"}]`)
	fw, err := mw.CreateFormFile("image", "a.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("first"))
	fw, err = mw.CreateFormFile("file", "b.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("second"))
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/v1/problems", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	request, files, err := decodeProblemRequest(r)
	if err != nil {
		t.Fatalf("decodeProblemRequest() error = %v", err)
	}
	defer closeFiles(files)

	if request.Title == nil || *request.Title != "Two Sum" {
		t.Errorf("title = %v, want Two Sum", request.Title)
	}
	if request.Difficulty == nil || *request.Difficulty != "medium" {
		t.Errorf("difficulty = %v, want medium", request.Difficulty)
	}
	if request.Description != nil {
		t.Error("absent fields must stay nil")
	}
	if len(request.Tags) != 2 || request.Tags[1] != "hash" {
		t.Errorf("tags = %v", request.Tags)
	}
	if len(request.Hints) != 1 || request.Hints[0].Text != "use a map" {
		t.Errorf("hints = %+v", request.Hints)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want files from every field", len(files))
	}
	var contents []string
	for _, reader := range asReaders(files) {
		data, _ := io.ReadAll(reader)
		contents = append(contents, string(data))
	}
	if !slicesContainAll(contents, "first", "second") {
		t.Errorf("file contents = %v", contents)
	}
}

func TestDecodeProblemRequestBadTags(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("title", "x")
	mw.WriteField("tags", "array,hash")
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/v1/problems", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	if _, _, err := decodeProblemRequest(r); !errors.Is(err, hub_errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func slicesContainAll(got []string, want ...string) bool {
	seen := make(map[string]bool, len(got))
	for _, s := range got {
		seen[s] = true
	}
	for _, s := range want {
		if !seen[s] {
			return false
		}
	}
	return true
}
