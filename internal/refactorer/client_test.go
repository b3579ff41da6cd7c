package refactorer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/refactor-hub/internal/config"
)

func newTestClient(url string) *Client {
	return New(config.Refactorer{
		APIURLRefactorer:  url,
		APIKey:            "sk_test",
		Model:             "gpt-3.5-turbo",
		TimeoutRefactorer: 5 * time.Second,
	})
}

func TestRefactor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req CompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "class App {}")

		resp := CompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message Message `json:"message"`
		}{Message: Message{Role: "assistant", Content: "  const App = () => null\n"}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Refactor(context.Background(), "src/App.jsx", "class App {}")
	require.NoError(t, err)
	// ответ движка очищается от обрамляющих пробелов
	assert.Equal(t, "const App = () => null", result)
}

func TestRefactor_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Refactor(context.Background(), "a.js", "x")
	require.Error(t, err)
}

func TestRefactor_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  "}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Refactor(context.Background(), "a.js", "x")
	require.Error(t, err)
}

func TestRefactor_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// тело нужно вычитать, иначе сервер не заметит обрыв соединения
		// и контекст запроса никогда не отменится
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(srv.URL)
	_, err := client.Refactor(ctx, "a.js", "x")
	require.Error(t, err)
}
