// Package assistant keeps the chat transcript shown next to the closet and
// turns model replies into outfit selections.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/models"
)

const Greeting = "Hello! How are you feeling today? Let's pick an outfit."

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is already being prepared")
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Recommender produces a reply for prompt given the outfits on offer.
type Recommender interface {
	Recommend(ctx context.Context, prompt string, catalog []models.Outfit) (string, error)
}

// chatResetter is implemented by recommenders that keep conversation state.
type chatResetter interface {
	ResetChat()
}

// Wardrobe is the part of the closet the assistant reads and steers.
type Wardrobe interface {
	Outfits() []models.Outfit
	ApplyRecommendation(outfitName string) bool
}

type Assistant struct {
	rec      Recommender
	wardrobe Wardrobe
	log      *logger.Logger

	mu         sync.Mutex
	transcript []Message
	busy       bool
}

func New(rec Recommender, wardrobe Wardrobe, log *logger.Logger) *Assistant {
	if log == nil {
		log = logger.Nop()
	}
	return &Assistant{
		rec:        rec,
		wardrobe:   wardrobe,
		log:        log.With("service", "Assistant"),
		transcript: []Message{{Sender: SenderAI, Text: Greeting}},
	}
}

// Transcript returns a copy of the conversation so far.
func (a *Assistant) Transcript() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Message(nil), a.transcript...)
}

// Busy reports whether a reply is outstanding.
func (a *Assistant) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Reset starts a new conversation: the transcript goes back to the greeting
// and the recommender forgets earlier turns. It fails with ErrBusy while a
// reply is outstanding.
func (a *Assistant) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		return ErrBusy
	}
	a.transcript = []Message{{Sender: SenderAI, Text: Greeting}}
	if r, ok := a.rec.(chatResetter); ok {
		r.ResetChat()
	}
	a.log.Debug("conversation reset")
	return nil
}

// Send posts text as the user, asks for a recommendation and, when the reply
// names an outfit, selects it in the closet. It returns the AI reply. The
// user message stays in the transcript even when a configuration error
// prevents a reply.
func (a *Assistant) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return Message{}, ErrBusy
	}
	a.busy = true
	a.transcript = append(a.transcript, Message{Sender: SenderUser, Text: text})
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.busy = false
		a.mu.Unlock()
	}()

	reply, err := a.rec.Recommend(ctx, text, a.wardrobe.Outfits())
	if err != nil {
		return Message{}, err
	}

	if name, ok := gateway.ExtractRecommendation(reply); ok {
		if a.wardrobe.ApplyRecommendation(name) {
			a.log.Info("recommendation applied", "outfit", name)
		} else {
			a.log.Debug("recommended outfit not in closet", "outfit", name)
		}
	}

	msg := Message{Sender: SenderAI, Text: reply}
	a.mu.Lock()
	a.transcript = append(a.transcript, msg)
	a.mu.Unlock()
	return msg, nil
}
