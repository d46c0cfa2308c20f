package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/models"
)

type fakeRecommender struct {
	reply   string
	err     error
	catalog []models.Outfit
	block   chan struct{}
	started chan struct{}
	resets  int
}

func (f *fakeRecommender) Recommend(ctx context.Context, prompt string, catalog []models.Outfit) (string, error) {
	f.catalog = catalog
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.reply, f.err
}

func (f *fakeRecommender) ResetChat() { f.resets++ }

type fakeWardrobe struct {
	outfits []models.Outfit
	applied []string
}

func (f *fakeWardrobe) Outfits() []models.Outfit { return f.outfits }

func (f *fakeWardrobe) ApplyRecommendation(name string) bool {
	f.applied = append(f.applied, name)
	return name == "Cozy Day"
}

func TestTranscriptStartsWithGreeting(t *testing.T) {
	a := New(&fakeRecommender{}, &fakeWardrobe{}, nil)
	got := a.Transcript()
	if len(got) != 1 || got[0].Sender != SenderAI || got[0].Text != Greeting {
		t.Fatalf("transcript = %+v", got)
	}
}

func TestSendAppliesEmphasizedOutfit(t *testing.T) {
	rec := &fakeRecommender{reply: "I'd suggest **Cozy Day** for the rain."}
	w := &fakeWardrobe{outfits: []models.Outfit{{ID: "o1", Name: "Cozy Day"}}}
	a := New(rec, w, nil)

	msg, err := a.Send(context.Background(), "  It's raining  ")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Sender != SenderAI || msg.Text != rec.reply {
		t.Fatalf("reply = %+v", msg)
	}
	if len(w.applied) != 1 || w.applied[0] != "Cozy Day" {
		t.Fatalf("applied = %v", w.applied)
	}
	if len(rec.catalog) != 1 {
		t.Fatal("catalog not passed to recommender")
	}

	tr := a.Transcript()
	if len(tr) != 3 || tr[1].Text != "It's raining" || tr[1].Sender != SenderUser {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestSendWithoutEmphasisLeavesClosetAlone(t *testing.T) {
	w := &fakeWardrobe{}
	a := New(&fakeRecommender{reply: gateway.Apology}, w, nil)
	if _, err := a.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}
	if len(w.applied) != 0 {
		t.Fatalf("applied = %v", w.applied)
	}
}

func TestSendRejectsBlank(t *testing.T) {
	a := New(&fakeRecommender{}, &fakeWardrobe{}, nil)
	if _, err := a.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v", err)
	}
	if len(a.Transcript()) != 1 {
		t.Fatal("blank message recorded")
	}
}

func TestSendPropagatesConfigurationError(t *testing.T) {
	a := New(&fakeRecommender{err: gateway.ErrMissingAPIKey}, &fakeWardrobe{}, nil)
	if _, err := a.Send(context.Background(), "hi"); !errors.Is(err, gateway.ErrMissingAPIKey) {
		t.Fatalf("err = %v", err)
	}
	if a.Busy() {
		t.Fatal("still busy after failure")
	}
}

func TestSendWhileBusy(t *testing.T) {
	rec := &fakeRecommender{reply: "ok", block: make(chan struct{}), started: make(chan struct{})}
	a := New(rec, &fakeWardrobe{}, nil)

	done := make(chan error)
	go func() {
		_, err := a.Send(context.Background(), "first")
		done <- err
	}()
	<-rec.started

	if _, err := a.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	close(rec.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if got := len(a.Transcript()); got != 3 {
		t.Fatalf("transcript length = %d, want 3", got)
	}
}

func TestResetStartsNewConversation(t *testing.T) {
	rec := &fakeRecommender{reply: "Try **Cozy Day**."}
	a := New(rec, &fakeWardrobe{}, nil)
	if _, err := a.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	tr := a.Transcript()
	if len(tr) != 1 || tr[0].Text != Greeting {
		t.Fatalf("transcript = %+v", tr)
	}
	if rec.resets != 1 {
		t.Fatalf("recommender resets = %d, want 1", rec.resets)
	}
}

func TestResetWhileBusy(t *testing.T) {
	rec := &fakeRecommender{reply: "ok", block: make(chan struct{}), started: make(chan struct{})}
	a := New(rec, &fakeWardrobe{}, nil)

	done := make(chan error)
	go func() {
		_, err := a.Send(context.Background(), "first")
		done <- err
	}()
	<-rec.started

	if err := a.Reset(); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	close(rec.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if rec.resets != 0 {
		t.Fatal("recommender reset while busy")
	}
}
