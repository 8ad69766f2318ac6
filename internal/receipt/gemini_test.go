package receipt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini answers generateContent calls with text and records the last
// request it saw.
func fakeGemini(t *testing.T, status int, text string) (*httptest.Server, *geminiRequest) {
	t.Helper()
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
			return
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(GeminiConfig{APIKey: "test-key", Model: "test-model", BaseURL: baseURL + "/"})
}

func TestGeminiClient_ScanReceipt(t *testing.T) {
	srv, got := fakeGemini(t, http.StatusOK, `{"items":[{"name":"Pizza","price":20}],"tax":2}`)
	client := newTestClient(srv.URL)

	img := Image{Data: []byte("\x89PNG fake"), MIMEType: "image/png"}
	r, err := client.ScanReceipt(context.Background(), img)
	require.NoError(t, err)

	require.Len(t, r.Items, 1)
	assert.Equal(t, "Pizza", r.Items[0].Name)
	assert.Equal(t, "20", r.Items[0].Price.String())
	require.NotNil(t, r.Tax)
	assert.Equal(t, "2", r.Tax.String())

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	inline := got.Contents[0].Parts[0].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/png", inline.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(img.Data), inline.Data)
	assert.Equal(t, Prompt, got.Contents[0].Parts[1].Text)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestGeminiClient_ExtractLineItems(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, "```json\n{\"items\":[{\"name\":\"Tea\",\"price\":3}]}\n```")

	items, err := newTestClient(srv.URL).ExtractLineItems(context.Background(), Image{Data: []byte("jpeg")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].Name)
}

func TestGeminiClient_Errors(t *testing.T) {
	ctx := context.Background()
	img := Image{Data: []byte("jpeg"), MIMEType: "image/jpeg"}

	t.Run("missing api key", func(t *testing.T) {
		_, err := NewGeminiClient(GeminiConfig{}).ScanReceipt(ctx, img)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("empty image", func(t *testing.T) {
		_, err := newTestClient("http://unused").ScanReceipt(ctx, Image{})
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("api error", func(t *testing.T) {
		srv, _ := fakeGemini(t, http.StatusTooManyRequests, "")
		_, err := newTestClient(srv.URL).ScanReceipt(ctx, img)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("non-json answer", func(t *testing.T) {
		srv, _ := fakeGemini(t, http.StatusOK, "I see a pizza.")
		_, err := newTestClient(srv.URL).ScanReceipt(ctx, img)
		assert.ErrorIs(t, err, ErrNonJSON)
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()
		_, err := newTestClient(srv.URL).ScanReceipt(ctx, img)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
