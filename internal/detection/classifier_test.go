// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini-2024-07-18",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
}

func TestOpenAIClassifier_Classify(t *testing.T) {
	srv := newChatServer(t, `{"probability": 1.4, "features": ["uniform naming"]}`)
	defer srv.Close()

	c := NewOpenAIClassifier("test-key", "", srv.URL+"/v1")
	r, err := c.Classify(context.Background(), Sample{Path: "a.go", Language: "go", Content: sampleGo})
	require.NoError(t, err)

	assert.Equal(t, 1.0, r.Probability, "out-of-range model output is clamped")
	assert.Equal(t, "gpt-4o-mini-2024-07-18", r.ModelVersion)
	assert.Equal(t, []string{"uniform naming"}, r.Features)
}

func TestOpenAIClassifier_BadReply(t *testing.T) {
	srv := newChatServer(t, "not json")
	defer srv.Close()

	c := NewOpenAIClassifier("test-key", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Classify(context.Background(), Sample{Path: "a.go", Content: sampleGo})
	assert.Error(t, err)
}
