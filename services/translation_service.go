package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Content kinds carried through cache keys and prompts.
const (
	ContentKindMealName    = "meal_name"
	ContentKindIngredient  = "ingredient"
	ContentKindInstruction = "instruction"
)

// translationChunkSize caps how many fragments go into one LLM request.
const translationChunkSize = 30

var languageNames = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ro": "Romanian",
	"cs": "Czech",
}

func IsSupportedLanguage(lang string) bool {
	_, ok := languageNames[lang]
	return ok
}

// TranslationCache is a process-wide append-only cache keyed by
// (content, kind, language). Entries are never invalidated; Clear exists
// for test isolation.
type TranslationCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewTranslationCache() *TranslationCache {
	return &TranslationCache{entries: make(map[string]string)}
}

func cacheKey(content, kind, lang string) string {
	return content + "\x00" + kind + "\x00" + lang
}

func (c *TranslationCache) Get(content, kind, lang string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(content, kind, lang)]
	return v, ok
}

func (c *TranslationCache) Put(content, kind, lang, translated string) {
	c.mu.Lock()
	c.entries[cacheKey(content, kind, lang)] = translated
	c.mu.Unlock()
}

func (c *TranslationCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TranslationCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]string)
	c.mu.Unlock()
}

// TranslationService batches content fragments into chat-completion calls
// against an OpenAI-compatible endpoint. Failures always degrade to the
// original English text; translation never blocks the rest of the app.
type TranslationService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	cache   *TranslationCache
}

func NewTranslationService(cache *TranslationCache) *TranslationService {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	return &TranslationService{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// TranslateBatch maps each fragment to its translation in the target
// language. English targets short-circuit to an identity mapping without
// touching the collaborator. Every fragment is always present in the result.
func (s *TranslationService) TranslateBatch(ctx context.Context, items []string, kind, targetLang string) map[string]string {
	result := make(map[string]string, len(items))
	for _, item := range items {
		result[item] = item
	}
	if targetLang == "en" || len(items) == 0 {
		return result
	}
	langName, ok := languageNames[targetLang]
	if !ok {
		return result
	}

	// dedupe and collect cache misses
	var missing []string
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if cached, hit := s.cache.Get(item, kind, targetLang); hit {
			result[item] = cached
			continue
		}
		missing = append(missing, item)
	}

	for start := 0; start < len(missing); start += translationChunkSize {
		end := start + translationChunkSize
		if end > len(missing) {
			end = len(missing)
		}
		chunk := missing[start:end]
		translated, err := s.translateChunk(ctx, chunk, langName)
		if err != nil {
			log.Printf("translation error: %v", err)
			continue // fragments keep their original text
		}
		for _, item := range chunk {
			if tr, ok := translated[item]; ok && tr != "" {
				result[item] = tr
				s.cache.Put(item, kind, targetLang, tr)
			}
		}
	}
	return result
}

func (s *TranslationService) translateChunk(ctx context.Context, items []string, langName string) (map[string]string, error) {
	var list strings.Builder
	for i, item := range items {
		fmt.Fprintf(&list, "%d. %s\n", i+1, item)
	}

	prompt := fmt.Sprintf(`You are a professional translator. Translate the following text items from English to %s.

Items to translate:
%s
Return your response as a valid JSON object with this structure:
{
  "original text 1": "translated text 1",
  "original text 2": "translated text 2"
}`, langName, list.String())

	reqBody := chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	}
	reqBody.ResponseFormat.Type = "json_object"
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call translation API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation API error %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse translation envelope: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("translation response has no choices")
	}

	translations := make(map[string]string)
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation JSON: %w", err)
	}
	return translations, nil
}

// MealPlanTranslations groups the three content-kind mappings of one plan.
type MealPlanTranslations struct {
	MealNames           map[string]string `json:"meal_names"`
	Ingredients         map[string]string `json:"ingredients"`
	CookingInstructions map[string]string `json:"cooking_instructions"`
}

// TranslateMealPlanContent translates the three content kinds concurrently;
// the requests are independent and order between them doesn't matter.
func (s *TranslationService) TranslateMealPlanContent(ctx context.Context, mealNames, ingredients, instructions []string, targetLang string) MealPlanTranslations {
	var out MealPlanTranslations
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.MealNames = s.TranslateBatch(gctx, mealNames, ContentKindMealName, targetLang)
		return nil
	})
	g.Go(func() error {
		out.Ingredients = s.TranslateBatch(gctx, ingredients, ContentKindIngredient, targetLang)
		return nil
	})
	g.Go(func() error {
		out.CookingInstructions = s.TranslateBatch(gctx, instructions, ContentKindInstruction, targetLang)
		return nil
	})
	_ = g.Wait() // TranslateBatch never returns an error; it degrades instead
	return out
}
