package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// OpenAIProvider asks a vision-capable model to read the receipt. Output is
// forced into a tiny JSON contract so parsing stays dumb.
type OpenAIProvider struct {
	modelName string
	client    *openai.Client
}

func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	return &OpenAIProvider{
		modelName: modelName,
		client:    openai.NewClientWithConfig(config),
	}
}

const scanPrompt = `You read expense receipts. Reply with JSON only, no markdown:
{"amount": 123.45, "date": "2006-01-02"}
amount is the receipt total. date is the purchase date. If a field is not
readable, use 0 for amount and "" for date.`

type scanResult struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

func (p *OpenAIProvider) ScanReceipt(ctx context.Context, receiptURL string) (*Suggestion, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scanPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Extract the total and date from this receipt."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: receiptURL}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("receipt scan: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("receipt scan: empty response")
	}

	var result scanResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("receipt scan: parse: %w", err)
	}

	suggestion := &Suggestion{Amount: result.Amount, Date: time.Now()}
	if result.Date != "" {
		if parsed, err := time.Parse("2006-01-02", result.Date); err == nil {
			suggestion.Date = parsed
		}
	}
	return suggestion, nil
}
