// Package gateway wraps the remote generative model used for outfit
// recommendations and background removal. Remote failures never escape: chat
// failures become a canned apology and image failures return the input. Only
// a missing API key is reported as an error.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"

	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/models"
)

// ErrMissingAPIKey means the gateway was built without a credential. It is
// a configuration problem, not a transient one.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Apology is the reply used whenever a recommendation cannot be produced.
const Apology = "Sorry, I encountered an error while thinking of an outfit for you."

const backgroundInstruction = "Isolate the main clothing item from this image, remove the original background, " +
	"and place it on a solid white background with the hex color #FFFFFF. " +
	"The output should be a standard image format like JPEG or PNG. Only return the image, no text."

type Config struct {
	APIKey            string
	ChatModel         string
	ImageModel        string
	ImageMaxDimension int
	// Dial overrides how the remote client is created. Defaults to DialGemini.
	Dial DialFunc
}

type Gateway struct {
	cfg Config
	log *logger.Logger

	clientMu sync.Mutex
	client   Client

	// chatMu serializes turns of the conversation.
	chatMu sync.Mutex
	chat   ChatSession
}

// New never contacts the remote service; the client is created on first use.
func New(cfg Config, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gemini-2.5-flash"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image-preview"
	}
	if cfg.Dial == nil {
		cfg.Dial = DialGemini
	}
	return &Gateway{cfg: cfg, log: log.With("service", "Gateway")}
}

func (g *Gateway) getClient(ctx context.Context) (Client, error) {
	if g.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	g.clientMu.Lock()
	defer g.clientMu.Unlock()
	if g.client == nil {
		c, err := g.cfg.Dial(ctx, g.cfg.APIKey)
		if err != nil {
			return nil, err
		}
		g.client = c
	}
	return g.client, nil
}

// Close releases the remote client, if one was created.
func (g *Gateway) Close() error {
	g.clientMu.Lock()
	defer g.clientMu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

// Recommend continues the conversation with prompt. The first call of a
// session primes the model with catalog; later calls reuse that session. On
// failure the session is dropped so the next call starts over.
func (g *Gateway) Recommend(ctx context.Context, prompt string, catalog []models.Outfit) (string, error) {
	client, err := g.getClient(ctx)
	if errors.Is(err, ErrMissingAPIKey) {
		return "", err
	}
	if err != nil {
		g.log.Error("Error getting outfit recommendation", "error", err)
		return Apology, nil
	}

	g.chatMu.Lock()
	defer g.chatMu.Unlock()

	if g.chat == nil {
		g.chat = client.StartChat(g.cfg.ChatModel, SystemInstruction(catalog))
		g.log.Debug("chat session started", "outfits", len(catalog))
	}
	resp, err := g.chat.SendMessage(ctx, genai.Text(prompt))
	if err == nil {
		if text := responseText(resp); text != "" {
			return text, nil
		}
		err = fmt.Errorf("model returned no text")
	}
	g.log.Error("Error getting outfit recommendation", "error", err)
	g.chat = nil
	return Apology, nil
}

// ResetChat forgets the conversation.
func (g *Gateway) ResetChat() {
	g.chatMu.Lock()
	g.chat = nil
	g.chatMu.Unlock()
}

// SystemInstruction primes the assistant with the outfits it may pick from.
func SystemInstruction(catalog []models.Outfit) string {
	lines := make([]string, 0, len(catalog))
	for _, o := range catalog {
		lines = append(lines, fmt.Sprintf("- Name: %s\n  Description: %s", o.Name, o.Description))
	}
	outfits := strings.Join(lines, "\n")
	if outfits == "" {
		outfits = "No outfits available."
	}
	return `You are a helpful fashion assistant. Your goal is to help the user choose an outfit from their virtual closet based on their mood, the weather, or any constraints they provide.
Below is a list of their available outfits. ONLY recommend outfits from this list.
When you recommend an outfit, state its name clearly in your response, enclosed in double asterisks, like **Outfit Name**. Do not recommend more than one outfit.

Available Outfits:
` + outfits
}

var emphasis = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ExtractRecommendation returns the text of the first **...** span in reply.
// Only the first span counts, even when it is empty.
func ExtractRecommendation(reply string) (string, bool) {
	m := emphasis.FindStringSubmatch(reply)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// StripBackground asks the model to cut the garment out onto white. Any
// failure, including a reply without an image, returns img unchanged.
func (g *Gateway) StripBackground(ctx context.Context, img Image) (Image, error) {
	client, err := g.getClient(ctx)
	if errors.Is(err, ErrMissingAPIKey) {
		return img, err
	}
	if err != nil {
		g.log.Error("Error removing image background", "error", err)
		return img, nil
	}

	prepared := shrink(img, g.cfg.ImageMaxDimension)
	resp, err := client.GenerateContent(ctx, g.cfg.ImageModel,
		genai.Blob{MIMEType: prepared.MIMEType, Data: prepared.Data},
		genai.Text(backgroundInstruction),
	)
	if err != nil {
		g.log.Error("Error removing image background", "error", err)
		return img, nil
	}
	out, ok := responseImage(resp)
	if !ok {
		g.log.Warn("Error removing image background", "error", "the model did not return an image")
		return img, nil
	}
	return out, nil
}
