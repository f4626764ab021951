// Package llm asks a hosted language model for JSON that matches a schema.
// Report recommendations are its only caller, so requests are single-turn.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a Request. Vendor clients implement it
// directly; WithRetry and WithLogging wrap one Provider in another.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is one system prompt plus one user prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, switches the vendor to structured output and the
	// reply is validated against it before Generate returns.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the vendor finish reason reduced to what callers act on.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output. Content is the raw text, which is JSON
// whenever the Request carried a Schema.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish runs the checks every vendor shares once a reply arrives.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.StopReason == StopMaxTokens {
		return nil, &TruncatedError{Content: resp.Content, Limit: req.MaxTokens}
	}
	if err := validate(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
