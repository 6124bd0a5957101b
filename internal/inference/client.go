package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"ticket-classifier-go/internal/config"
	"ticket-classifier-go/internal/logger"
	"ticket-classifier-go/internal/types"
)

const (
	defaultOpenAIModel    = "gpt-4o"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// Inference is the engine's untrusted output: the reconciler re-validates
// every field before anything downstream sees it.
type Inference struct {
	Fields     types.ClassificationFields
	RawComment string
	RawReply   string
}

// Client calls the configured completion provider. It does not retry by
// default; callers opt in via llm_max_retries, and even then malformed
// responses and client errors are never retried.
type Client struct {
	provider     string
	model        string
	openaiKey    string
	anthropicKey string
	timeout      time.Duration
	maxRetries   int
	log          *logrus.Entry
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		provider:     cfg.LLMProvider,
		model:        cfg.LLMModel,
		openaiKey:    cfg.OpenAIAPIKey,
		anthropicKey: cfg.AnthropicAPIKey,
		timeout:      time.Duration(cfg.LLMTimeoutSec) * time.Second,
		maxRetries:   cfg.LLMMaxRetries,
		log:          logger.New().WithField("component", "inference"),
	}
}

// Infer classifies the ticket text through the completion provider. Errors
// come in two distinct flavors: *MalformedResponseError when the completion
// held no parseable JSON, and wrapped transport/service errors otherwise.
func (c *Client) Infer(ctx context.Context, text string, hints types.TicketContext) (Inference, error) {
	if c.maxRetries <= 0 {
		return c.attempt(ctx, text, hints)
	}

	var out Inference
	op := func() error {
		res, err := c.attempt(ctx, text, hints)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			c.log.WithError(err).Warn("inference attempt failed, retrying")
			return err
		}
		out = res
		return nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return Inference{}, err
	}
	return out, nil
}

// retryable: transport and 5xx failures are worth another attempt; malformed
// JSON and 4xx client errors are not.
func retryable(err error) bool {
	var mErr *MalformedResponseError
	if errors.As(err, &mErr) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 {
		return false
	}
	return true
}

func (c *Client) attempt(ctx context.Context, text string, hints types.TicketContext) (Inference, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := BuildUserPrompt(text, hints)

	var content string
	var err error
	switch c.provider {
	case "anthropic":
		model := c.model
		if model == "" {
			model = defaultAnthropicModel
		}
		c.log.WithFields(logrus.Fields{"provider": "anthropic", "model": model}).Debug("inference request")
		content, err = c.callAnthropic(ctx, model, userPrompt)
	default:
		model := c.model
		if model == "" {
			model = defaultOpenAIModel
		}
		c.log.WithFields(logrus.Fields{"provider": "openai", "model": model}).Debug("inference request")
		content, err = c.callOpenAI(ctx, model, userPrompt)
	}
	if err != nil {
		return Inference{}, err
	}

	p, err := parsePayload(content)
	if err != nil {
		return Inference{}, err
	}
	return Inference{
		Fields: types.ClassificationFields{
			Contact:       string(p.Fields.Contact),
			DealerName:    string(p.Fields.DealerName),
			DealerID:      string(p.Fields.DealerID),
			Rep:           string(p.Fields.Rep),
			Category:      string(p.Fields.Category),
			SubCategory:   string(p.Fields.SubCategory),
			Syndicator:    string(p.Fields.Syndicator),
			InventoryType: string(p.Fields.InventoryType),
		},
		RawComment: p.Comment,
		RawReply:   p.SuggestedReply,
	}, nil
}

func (c *Client) callOpenAI(ctx context.Context, model, userPrompt string) (string, error) {
	client := openai.NewClient(c.openaiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai call: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) callAnthropic(ctx context.Context, model, userPrompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(c.anthropicKey))
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic call: %w", err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic call: no text content in response")
}
