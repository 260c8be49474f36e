package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTranslator returns a chat-completions handler that "translates" by
// prefixing the target marker, and counts calls.
func fakeTranslator(t *testing.T, calls *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Len(t, req.Messages, 1)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		// echo back each numbered item from the prompt, prefixed
		out := map[string]string{}
		for _, line := range strings.Split(req.Messages[0].Content, "\n") {
			line = strings.TrimSpace(line)
			if idx := strings.Index(line, ". "); idx > 0 && idx <= 3 {
				item := line[idx+2:]
				out[item] = "DE:" + item
			}
		}
		content, _ := json.Marshal(out)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(content)}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newTestTranslator(t *testing.T, handler http.HandlerFunc) (*TranslationService, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("OPENAI_BASE_URL", server.URL)
	t.Setenv("OPENAI_API_KEY", "test-key")
	return NewTranslationService(NewTranslationCache()), server
}

func TestTranslateBatch(t *testing.T) {
	t.Run("translates to target language", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		got := svc.TranslateBatch(context.Background(), []string{"Oats", "Milk"}, ContentKindIngredient, "de")
		assert.Equal(t, "DE:Oats", got["Oats"])
		assert.Equal(t, "DE:Milk", got["Milk"])
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("english is identity with zero calls", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		got := svc.TranslateBatch(context.Background(), []string{"Oats", "Milk"}, ContentKindIngredient, "en")
		assert.Equal(t, map[string]string{"Oats": "Oats", "Milk": "Milk"}, got)
		assert.Zero(t, calls.Load())
	})

	t.Run("unsupported language degrades to identity", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		got := svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindIngredient, "zz")
		assert.Equal(t, "Oats", got["Oats"])
		assert.Zero(t, calls.Load())
	})

	t.Run("cache avoids repeat calls", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		_ = svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindIngredient, "de")
		got := svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindIngredient, "de")
		assert.Equal(t, "DE:Oats", got["Oats"])
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("cache keys include content kind", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		_ = svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindIngredient, "de")
		_ = svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindMealName, "de")
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("duplicates collapse into one fragment", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		got := svc.TranslateBatch(context.Background(),
			[]string{"Oats", "Oats", "Oats"}, ContentKindIngredient, "de")
		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("splits large batches into chunks", func(t *testing.T) {
		var calls atomic.Int64
		svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

		items := make([]string, 0, translationChunkSize+5)
		for i := 0; i < translationChunkSize+5; i++ {
			items = append(items, fmt.Sprintf("Item %d", i))
		}
		got := svc.TranslateBatch(context.Background(), items, ContentKindIngredient, "de")
		assert.Len(t, got, len(items))
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("malformed payload falls back to originals", func(t *testing.T) {
		svc, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
			resp := map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "not json at all"}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		})

		got := svc.TranslateBatch(context.Background(), []string{"Oats", "Milk"}, ContentKindIngredient, "de")
		assert.Equal(t, "Oats", got["Oats"])
		assert.Equal(t, "Milk", got["Milk"])
	})

	t.Run("server error falls back to originals", func(t *testing.T) {
		svc, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})

		got := svc.TranslateBatch(context.Background(), []string{"Oats"}, ContentKindIngredient, "de")
		assert.Equal(t, "Oats", got["Oats"])
	})
}

func TestTranslateMealPlanContent(t *testing.T) {
	var calls atomic.Int64
	svc, _ := newTestTranslator(t, fakeTranslator(t, &calls))

	out := svc.TranslateMealPlanContent(context.Background(),
		[]string{"Oats Bowl"}, []string{"Oats"}, []string{"Boil water"}, "de")

	assert.Equal(t, "DE:Oats Bowl", out.MealNames["Oats Bowl"])
	assert.Equal(t, "DE:Oats", out.Ingredients["Oats"])
	assert.Equal(t, "DE:Boil water", out.CookingInstructions["Boil water"])
	assert.Equal(t, int64(3), calls.Load())
}

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	_, hit := cache.Get("Oats", ContentKindIngredient, "de")
	assert.False(t, hit)

	cache.Put("Oats", ContentKindIngredient, "de", "Hafer")
	got, hit := cache.Get("Oats", ContentKindIngredient, "de")
	assert.True(t, hit)
	assert.Equal(t, "Hafer", got)

	// same content under a different kind or language is a distinct entry
	_, hit = cache.Get("Oats", ContentKindMealName, "de")
	assert.False(t, hit)
	_, hit = cache.Get("Oats", ContentKindIngredient, "fr")
	assert.False(t, hit)

	assert.Equal(t, 1, cache.Size())
	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestIsSupportedLanguage(t *testing.T) {
	for _, lang := range []string{"en", "de", "fr", "es", "it", "pt", "nl", "pl", "ro", "cs"} {
		assert.True(t, IsSupportedLanguage(lang), lang)
	}
	assert.False(t, IsSupportedLanguage("jp"))
	assert.False(t, IsSupportedLanguage(""))
}
