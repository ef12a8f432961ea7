package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody GenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "promotions"}]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-1.5-pro-latest", WithBaseURL(server.URL))

	resp, err := client.GenerateContent(context.Background(), GenerateRequest{
		Contents: []Content{
			{Role: RoleUser, Parts: []Part{{Text: "Categorize this"}}},
		},
		GenerationConfig: &GenerationConfig{Temperature: Temperature(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-pro-latest:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "promotions", resp.Text())

	// Temperature zero must be present on the wire, not omitted
	require.NotNil(t, gotBody.GenerationConfig)
	require.NotNil(t, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 0.0, *gotBody.GenerationConfig.Temperature)
}

func TestGenerateContentFunctionCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [
					{"functionCall": {"name": "categorize", "args": {"body": "hello"}}}
				]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-1.5-pro-latest", WithBaseURL(server.URL))
	resp, err := client.GenerateContent(context.Background(), GenerateRequest{})
	require.NoError(t, err)

	reply := Classify(resp)
	assert.Equal(t, ReplyCall, reply.Kind)
	require.NotNil(t, reply.Call)
	assert.Equal(t, "categorize", reply.Call.Name)
	assert.Equal(t, map[string]any{"body": "hello"}, reply.Call.Args)
}

func TestGenerateContentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "API key not valid"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("bad-key", "gemini-1.5-pro-latest", WithBaseURL(server.URL))
	_, err := client.GenerateContent(context.Background(), GenerateRequest{})
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Contains(t, backendErr.Error(), "API key not valid")
}

func TestGenerateContentTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Connection refused from here on

	client := NewClient("test-key", "gemini-1.5-pro-latest", WithBaseURL(server.URL))
	_, err := client.GenerateContent(context.Background(), GenerateRequest{})

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Zero(t, backendErr.StatusCode)
}

func TestGenerateContentUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-1.5-pro-latest", WithBaseURL(server.URL))
	_, err := client.GenerateContent(context.Background(), GenerateRequest{})
	assert.Error(t, err)
}
