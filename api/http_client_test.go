package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type staticToken string

func (s staticToken) GetToken(ctx context.Context) (string, error) { return string(s), nil }

func TestHTTPClient_Request_Success(t *testing.T) {
	// Mock server setup
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("Expected page=2, got '%s'", r.URL.RawQuery)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "GET", "/test-endpoint", url.Values{"page": {"2"}}, nil, &response)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response["message"] != "success" {
		t.Errorf("Expected response message to be 'success', got '%s'", response["message"])
	}
}

func TestHTTPClient_Request_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "POST", "/test-endpoint", nil, map[string]string{"key": "value"}, &response)

	// Assert
	if err == nil {
		t.Fatalf("Expected an error, got nil")
	}

	expectedError := "Request failed: 400"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Errorf("Expected *APIError with status 400, got %#v", err)
	}
}

func TestHTTPClient_Request_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"errors array", `{"errors":[{"message":"Venue not found"}]}`, "Venue not found"},
		{"message field", `{"message":"Too many requests"}`, "Too many requests"},
		{"not json", `<html>oops</html>`, "Request failed: 404"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(test.body))
			}))
			defer srv.Close()

			err := NewHTTPClient(srv.URL).Request(context.Background(), "GET", "/x", nil, nil, nil)
			if err == nil || err.Error() != test.want {
				t.Errorf("Expected error '%s', got '%v'", test.want, err)
			}
		})
	}
}

func TestHTTPClient_Request_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Noroff-API-Key"); got != "key-123" {
			t.Errorf("X-Noroff-API-Key = %q; want key-123", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q; want Bearer tok", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q; want application/json", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	client.APIKey = "key-123"
	client.Tokens = staticToken("tok")

	if err := client.Request(context.Background(), "DELETE", "/x", nil, nil, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestHTTPClient_Request_NoTokenNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q; want none", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	client.Tokens = staticToken("")

	if err := client.Request(context.Background(), "GET", "/x", nil, nil, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestHTTPClient_Request_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewHTTPClient(srv.URL).Request(context.Background(), "GET", "/holidaze/venues", nil, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %#v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", apiErr.Status)
	}
	if err.Error() != UNREACHABLE_MESSAGE {
		t.Errorf("Expected error '%s', got '%s'", UNREACHABLE_MESSAGE, err.Error())
	}
	if apiErr.Err == nil {
		t.Errorf("Expected the transport cause to be kept")
	}
}

func TestHTTPClient_Request_CancelledIsNotUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPClient(srv.URL).Request(ctx, "GET", "/x", nil, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("Expected a bare context error, got %#v", err)
	}
}
