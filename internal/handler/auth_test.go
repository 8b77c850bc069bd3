package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/auth"
	"github.com/protektor-crm/orderdesk/internal/handler"
	"github.com/protektor-crm/orderdesk/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func seedUser(t *testing.T, st *store.Store, login, password string) store.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := store.User{
		ID:             uuid.New(),
		Login:          login,
		FullName:       "Demo Operator",
		Role:           "operator",
		HashedPassword: string(hash),
	}
	st.AddUser(u)
	return u
}

func doLogin(t *testing.T, h *handler.AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	st := store.New()
	user := seedUser(t, st, "operator", "secret-pw")
	h := handler.NewAuthHandler(st, testJWTSecret)

	rec := doLogin(t, h, `{"login":"operator","password":"secret-pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Login != "operator" {
		t.Errorf("wrong user in response: %+v", resp.User)
	}

	claims, err := auth.ValidateToken(testJWTSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token for wrong user: %v", claims.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	st := store.New()
	seedUser(t, st, "operator", "secret-pw")
	h := handler.NewAuthHandler(st, testJWTSecret)

	rec := doLogin(t, h, `{"login":"operator","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	h := handler.NewAuthHandler(store.New(), testJWTSecret)

	rec := doLogin(t, h, `{"login":"ghost","password":"pw"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := handler.NewAuthHandler(store.New(), testJWTSecret)

	rec := doLogin(t, h, `{"login":"operator"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
