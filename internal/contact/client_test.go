package contact

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	. "offerdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() ContactFields {
	return ContactFields{
		Name:    "  Jane Doe ",
		Email:   " jane@example.com",
		Phone:   "+91 98765 43210 ",
		Message: "  Please get in touch about the role. ",
	}
}

type captured struct {
	method      string
	contentType string
	form        url.Values
}

func endpoint(t *testing.T, status int, body string, seen *captured) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			seen.method = r.Method
			seen.contentType = r.Header.Get("Content-Type")
			seen.form, _ = url.ParseQuery(string(raw))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient_RejectsBadEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "empty", endpoint: ""},
		{name: "whitespace", endpoint: "   "},
		{name: "relative", endpoint: "/macros/exec"},
		{name: "no host", endpoint: "https://"},
		{name: "ftp", endpoint: "ftp://example.com/exec"},
		{name: "unparsable", endpoint: "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{EndpointURL: tt.endpoint})
			assert.Nil(t, client)
			assert.ErrorIs(t, err, ErrEndpointNotConfigured)
		})
	}
}

func TestNewClient_Valid(t *testing.T) {
	client, err := NewClient(Config{EndpointURL: " https://script.example.com/macros/s/abc/exec "})
	require.NoError(t, err)
	assert.Equal(t, "https://script.example.com/macros/s/abc/exec", client.Endpoint())
}

func TestEncode(t *testing.T) {
	values := Encode(sampleFields())

	assert.Equal(t, "Jane Doe", values.Get("name"))
	assert.Equal(t, "jane@example.com", values.Get("email"))
	assert.Equal(t, "+91 98765 43210", values.Get("phone"))
	assert.Equal(t, "Please get in touch about the role.", values.Get("message"))
	assert.Equal(t, "contact-form", values.Get("source"))
	assert.Len(t, values, 5)
}

func TestSubmit_WireContract(t *testing.T) {
	var seen captured
	server := endpoint(t, http.StatusOK, `{"success":true,"message":"ok"}`, &seen)

	client, err := NewClient(Config{EndpointURL: server.URL})
	require.NoError(t, err)

	result, err := client.Submit(context.Background(), sampleFields())
	require.NoError(t, err)

	assert.Equal(t, SubmissionResult{Success: true, Message: "ok"}, result)
	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "application/x-www-form-urlencoded;charset=UTF-8", seen.contentType)
	assert.Equal(t, "Jane Doe", seen.form.Get("name"))
	assert.Equal(t, "contact-form", seen.form.Get("source"))
}

func TestSubmit_Responses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantSuccess bool
		wantMessage string
	}{
		{name: "success with message", status: 200, body: `{"success":true,"message":"Thanks!"}`, wantSuccess: true, wantMessage: "Thanks!"},
		{name: "success without message", status: 200, body: `{"success":true}`, wantSuccess: true, wantMessage: DefaultSuccessMessage},
		{name: "success flag absent", status: 200, body: `{"message":"received"}`, wantSuccess: true, wantMessage: "received"},
		{name: "explicit failure", status: 200, body: `{"success":false,"message":"Quota exceeded"}`, wantMessage: "Quota exceeded"},
		{name: "explicit failure no message", status: 200, body: `{"success":false}`, wantMessage: DefaultFailureMessage},
		{name: "http error with message", status: 500, body: `{"message":"Script crashed"}`, wantMessage: "Script crashed"},
		{name: "http error claims success", status: 503, body: `{"success":true}`, wantMessage: DefaultFailureMessage},
		{name: "not json", status: 200, body: `<html>login</html>`, wantMessage: DefaultFailureMessage},
		{name: "json array", status: 200, body: `[1,2]`, wantMessage: DefaultFailureMessage},
		{name: "markup stripped", status: 400, body: `{"success":false,"message":"<b>Bad</b> & <script>x()</script>input"}`, wantMessage: "Bad & input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := endpoint(t, tt.status, tt.body, nil)
			client, err := NewClient(Config{EndpointURL: server.URL})
			require.NoError(t, err)

			result, err := client.Submit(context.Background(), sampleFields())
			if tt.wantSuccess {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestSubmit_NetworkError(t *testing.T) {
	server := endpoint(t, http.StatusOK, `{}`, nil)
	client, err := NewClient(Config{EndpointURL: server.URL})
	require.NoError(t, err)
	server.Close()

	result, err := client.Submit(context.Background(), sampleFields())
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, DefaultFailureMessage, result.Message)
	assert.NotContains(t, result.Message, server.URL)
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := NewClient(Config{EndpointURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	result, err := client.Submit(context.Background(), sampleFields())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, result.Success)
	assert.Equal(t, DefaultFailureMessage, result.Message)
}
