package coach

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// SystemPrompt frames every conversation sent to the LLM.
const SystemPrompt = "You are Coach Jo, a practical fitness assistant focused on glute growth, progressive overload, " +
	"protein targets, vegan/pescatarian/omnivore swaps, plus creatine & hydration best practices. " +
	"Answer concisely and safely. This is not medical advice."

// NotConfiguredReply is returned without any network call when no provider
// API key is present.
const NotConfiguredReply = "AI assistant isn't configured yet. " +
	"Please add OPENAI_API_KEY or GEMINI_API_KEY to environment variables."

type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

const (
	openAIModel = "gpt-4o-mini"
	geminiModel = "gemini-1.5-pro"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	oneHour          = 60 * 60
	replyCacheExpire = oneHour * 1 // starter chips repeat the same questions
)

type Config struct {
	Provider Provider
	APIKey   string
}

// ResolveConfig picks the provider from the available API keys, the OpenAI
// key wins when both are set.
func ResolveConfig(openAIKey, geminiKey string) Config {
	switch {
	case openAIKey != "":
		return Config{Provider: ProviderOpenAI, APIKey: openAIKey}
	case geminiKey != "":
		return Config{Provider: ProviderGemini, APIKey: geminiKey}
	default:
		return Config{Provider: ProviderNone}
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	config        Config
	cache         *freecache.Cache
	httpClient    *http.Client
	openAIBaseURL string
	geminiBaseURL string
}

func NewClient(config Config, httpClient *http.Client) *Client {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Client{
		config:        config,
		cache:         freecache.NewCache(cacheSize),
		httpClient:    httpClient,
		openAIBaseURL: defaultOpenAIBaseURL,
		geminiBaseURL: defaultGeminiBaseURL,
	}
}

func (c *Client) Provider() Provider {
	return c.config.Provider
}

// Ask sends the conversation to the configured provider and returns the
// assistant reply. The system prompt is prepended here, callers only pass
// user and assistant turns.
func (c *Client) Ask(ctx context.Context, messages []Message) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coachClient.ask")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("coach.provider", string(c.config.Provider)))

	if c.config.Provider == ProviderNone {
		return NotConfiguredReply, nil
	}

	cacheKey := conversationCacheKey(messages)
	if cachedReply, err := c.cache.Get(cacheKey); err == nil {
		log.Tracef("coach reply found in cache")
		return string(cachedReply), nil
	}

	fullConversation := append([]Message{{Role: "system", Content: SystemPrompt}}, messages...)

	var reply string
	switch c.config.Provider {
	case ProviderOpenAI:
		reply, err = c.askOpenAI(ctx, fullConversation)
	case ProviderGemini:
		reply, err = c.askGemini(ctx, fullConversation)
	default:
		return "", fmt.Errorf("unknown provider: %s", c.config.Provider)
	}
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(cacheKey, []byte(reply), replyCacheExpire); err != nil {
		log.Errorf("failed to cache coach reply: %s", err)
	}
	return reply, nil
}

func conversationCacheKey(messages []Message) []byte {
	hash := sha1.New()
	for _, m := range messages {
		fmt.Fprintf(hash, "%s|%s\n", m.Role, m.Content)
	}
	return hash.Sum(nil)
}

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *Client) askOpenAI(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(openAIChatRequest{
		Model:       openAIModel,
		Messages:    messages,
		Temperature: 0.5,
		MaxTokens:   700,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := c.openAIBaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	respBytes, err := c.doRequest(req)
	if err != nil {
		return "", err
	}

	var chatResp openAIChatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) askGemini(ctx context.Context, messages []Message) (string, error) {
	// gemini gets the whole conversation as one flattened prompt
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(m.Role), m.Content))
	}
	prompt := strings.Join(parts, "\n\n")

	reqBody, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		c.geminiBaseURL, geminiModel, c.config.APIKey,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	respBytes, err := c.doRequest(req)
	if err != nil {
		return "", err
	}

	var generateResp geminiGenerateResponse
	if err := json.Unmarshal(respBytes, &generateResp); err != nil {
		return "", fmt.Errorf("unmarshal generate response: %w", err)
	}
	if len(generateResp.Candidates) == 0 || len(generateResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate response has no candidates")
	}
	return strings.TrimSpace(generateResp.Candidates[0].Content.Parts[0].Text), nil
}

func (c *Client) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response bytes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, respBytes)
	}
	return respBytes, nil
}
