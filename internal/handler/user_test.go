package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/service"
)

func registerUser(t *testing.T, api *testAPI, username, name, password string) {
	t.Helper()
	if _, err := api.users.Register(context.Background(), service.RegisterInput{
		Username: username,
		Name:     name,
		Password: password,
	}); err != nil {
		t.Fatalf("registering %s: %v", username, err)
	}
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	body := `{"username":"mluukkai","name":"Matti Luukkainen","password":"salainen"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if user.Username != "mluukkai" {
		t.Errorf("expected username mluukkai, got %q", user.Username)
	}
	if user.Blogs == nil || len(user.Blogs) != 0 {
		t.Errorf("expected empty blogs list, got %v", user.Blogs)
	}
	if strings.Contains(rec.Body.String(), "argon2") {
		t.Error("response must not leak the password hash")
	}
}

func TestRegisterUserValidation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"short username", `{"username":"ab","password":"secret"}`, http.StatusBadRequest},
		{"short password", `{"username":"abc","password":"pw"}`, http.StatusBadRequest},
		{"malformed json", `{"username"`, http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(test.body))
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)

			if rec.Code != test.want {
				t.Fatalf("expected %d, got %d: %s", test.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateUser(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registerUser(t, api, "mluukkai", "Matti Luukkainen", "salainen")

	body := `{"username":"mluukkai","name":"Other","password":"different"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "username must be unique") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registerUser(t, api, "mluukkai", "Matti Luukkainen", "salainen")
	registerUser(t, api, "hellas", "Arto Hellas", "salainen")

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var users []dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registerUser(t, api, "mluukkai", "Matti Luukkainen", "salainen")

	body := `{"username":"mluukkai","password":"salainen"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if resp.Username != "mluukkai" {
		t.Errorf("expected username mluukkai, got %q", resp.Username)
	}

	// The issued token authenticates subsequent writes.
	createBody := `{"title":"Logged in","url":"http://example.com"}`
	createReq := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(createBody))
	createReq.Header.Set("Authorization", "Bearer "+resp.Token)
	createRec := httptest.NewRecorder()
	api.router.ServeHTTP(createRec, createReq)

	if createRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 using issued token, got %d: %s", createRec.Code, createRec.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	registerUser(t, api, "mluukkai", "Matti Luukkainen", "salainen")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"mluukkai","password":"wrong"}`},
		{"unknown user", `{"username":"nobody","password":"salainen"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(test.body))
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "invalid username or password") {
				t.Errorf("unexpected error body: %s", rec.Body.String())
			}
		})
	}
}
