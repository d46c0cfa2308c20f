package gateway

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ChatSession keeps conversation history on the remote side of the wire.
type ChatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is the slice of the Gemini SDK the gateway needs.
type Client interface {
	StartChat(model, systemInstruction string) ChatSession
	GenerateContent(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	Close() error
}

// DialFunc creates a Client for apiKey.
type DialFunc func(ctx context.Context, apiKey string) (Client, error)

type genaiClient struct {
	c *genai.Client
}

// DialGemini connects to the Gemini API with an API key.
func DialGemini(ctx context.Context, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &genaiClient{c: client}, nil
}

func (g *genaiClient) StartChat(model, systemInstruction string) ChatSession {
	m := g.c.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	return m.StartChat()
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return g.c.GenerativeModel(model).GenerateContent(ctx, parts...)
}

func (g *genaiClient) Close() error {
	return g.c.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			out += string(t)
		}
	}
	return out
}

// responseImage returns the first image blob of the first candidate.
func responseImage(resp *genai.GenerateContentResponse) (Image, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Image{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if b, ok := part.(genai.Blob); ok && len(b.Data) > 0 && isImageMIME(b.MIMEType) {
			return Image{Data: b.Data, MIMEType: b.MIMEType}, true
		}
	}
	return Image{}, false
}
