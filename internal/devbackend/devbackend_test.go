package devbackend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doLogin(t *testing.T, h http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	resp := doLogin(t, h, "admin", "admin123")
	if resp.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login body = %s", resp.Body.String())
	}
	return out.Token
}

func authedGet(t *testing.T, h http.Handler, token, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Token "+token)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestLoginIssuesTokenAndCSRFCookie(t *testing.T) {
	h := New().Router()
	resp := doLogin(t, h, "admin", "admin123")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			Username    string `json:"username"`
			RoleDisplay string `json:"role_display"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Token == "" || out.User.Username != "admin" || out.User.RoleDisplay == "" {
		t.Fatalf("body = %s", resp.Body.String())
	}

	foundCSRF := false
	for _, c := range resp.Result().Cookies() {
		if c.Name == "csrftoken" && c.Value != "" {
			foundCSRF = true
		}
	}
	if !foundCSRF {
		t.Fatal("csrftoken cookie not set")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h := New().Router()
	resp := doLogin(t, h, "admin", "wrong")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
	var out struct {
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || len(out.NonFieldErrors) == 0 {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	h := New().Router()
	for _, path := range []string{
		"/api/auth/users/me/", "/api/auth/users/", "/api/devices/",
		"/api/attendance/daily/", "/api/attendance/leaves/", "/api/attendance/records/",
	} {
		resp := authedGet(t, h, "not-a-token", path)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", path, resp.Code)
		}
	}
}

func TestUsersBareArray(t *testing.T) {
	h := New().Router()
	token := loginToken(t, h)
	resp := authedGet(t, h, token, "/api/auth/users/")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var users []json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &users); err != nil {
		t.Fatalf("users must be a bare array: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("no seeded users")
	}
}

func TestDevicesPaged(t *testing.T) {
	h := New().Router()
	token := loginToken(t, h)
	resp := authedGet(t, h, token, "/api/devices/")
	var out struct {
		Count   int               `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count == 0 || out.Count != len(out.Results) {
		t.Fatalf("count = %d, results = %d", out.Count, len(out.Results))
	}
}

func TestRecordsLimitAndOrder(t *testing.T) {
	h := New().Router()
	token := loginToken(t, h)
	resp := authedGet(t, h, token, "/api/attendance/records/?limit=3")
	var out struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Results) != 3 {
		t.Fatalf("len = %d, want 3", len(out.Results))
	}
	// Новые первыми.
	if out.Results[0].ID < out.Results[1].ID {
		t.Fatalf("order: %d before %d", out.Results[0].ID, out.Results[1].ID)
	}
}

func TestLeavesStatusFilter(t *testing.T) {
	h := New().Router()
	token := loginToken(t, h)
	resp := authedGet(t, h, token, "/api/attendance/leaves/?status=pending")
	var out struct {
		Count   int `json:"count"`
		Results []struct {
			Status string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("pending count = %d, want 2", out.Count)
	}
	for _, l := range out.Results {
		if l.Status != "pending" {
			t.Fatalf("status = %q", l.Status)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h := New().Router()
	token := loginToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout/", nil)
	req.Header.Set("Authorization", "Token "+token)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout status = %d", resp.Code)
	}

	if resp := authedGet(t, h, token, "/api/devices/"); resp.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token still accepted: %d", resp.Code)
	}
}
