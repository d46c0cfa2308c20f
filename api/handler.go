// Package api exposes the closet, the assistant and the image tools as a
// JSON HTTP API for a browser front end.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/assistant"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/importer"
	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// BackgroundRemover cleans up garment photos.
type BackgroundRemover interface {
	StripBackground(ctx context.Context, img gateway.Image) (gateway.Image, error)
}

// ProductImporter reads clothing items off shop pages.
type ProductImporter interface {
	Import(ctx context.Context, url string) (*importer.Draft, error)
	DownloadImage(ctx context.Context, url string) (gateway.Image, error)
}

type Handler struct {
	closet    *closet.Closet
	assistant *assistant.Assistant
	images    BackgroundRemover
	importer  ProductImporter
	log       *logger.Logger
}

func NewHandler(c *closet.Closet, a *assistant.Assistant, images BackgroundRemover, im ProductImporter, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{closet: c, assistant: a, images: images, importer: im, log: log}
}

// Routes registers every endpoint behind the CORS and latency middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /closet", h.GetClosetHandler)
	mux.HandleFunc("POST /items", h.AddItemHandler)
	mux.HandleFunc("POST /items/import", h.ImportItemHandler)
	mux.HandleFunc("POST /outfits", h.AddOutfitHandler)
	mux.HandleFunc("POST /select", h.SelectHandler)
	mux.HandleFunc("POST /back", h.BackHandler)
	mux.HandleFunc("POST /switch-to-item", h.SwitchToItemHandler)
	mux.HandleFunc("POST /tab", h.ChangeTabHandler)
	mux.HandleFunc("POST /search", h.SearchHandler)
	mux.HandleFunc("POST /add-form", h.AddFormHandler)
	mux.HandleFunc("POST /drag/start", h.DragStartHandler)
	mux.HandleFunc("POST /drag/end", h.DragEndHandler)
	mux.HandleFunc("POST /trash", h.TrashHandler)
	mux.HandleFunc("POST /images/strip-background", h.StripBackgroundHandler)
	mux.HandleFunc("GET /assistant", h.GetAssistantHandler)
	mux.HandleFunc("POST /assistant/messages", h.SendMessageHandler)
	mux.HandleFunc("POST /assistant/reset", h.ResetAssistantHandler)
	return utils.CORSMiddleware(utils.LatencyMiddleware(h.log, mux))
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("Invalid request body: %v", err)
	}
	return nil
}

// respondGatewayError answers with 503 for a missing credential, the only
// error the gateway reports.
func respondGatewayError(w http.ResponseWriter, logMessage *strings.Builder, err error) bool {
	if errors.Is(err, gateway.ErrMissingAPIKey) {
		utils.AddToLogMessage(logMessage, err.Error())
		utils.RespondError(w, logMessage, "gateway not configured", http.StatusServiceUnavailable)
		return true
	}
	return false
}

// snapshot renders the closet state with image keys presigned.
func (h *Handler) snapshot(ctx context.Context) closet.Snapshot {
	s := h.closet.Snapshot()
	for i := range s.Grid {
		presentEntity(ctx, &s.Grid[i])
	}
	if s.SelectedItem != nil {
		presentItem(ctx, s.SelectedItem)
	}
	if s.SelectedOutfit != nil {
		presentOutfit(ctx, s.SelectedOutfit)
	}
	for i := range s.RelatedOutfits {
		presentOutfit(ctx, &s.RelatedOutfits[i])
	}
	for i := range s.OutfitPieces {
		presentItem(ctx, &s.OutfitPieces[i].Item)
	}
	return s
}

func presentEntity(ctx context.Context, e *models.Entity) {
	if e.Item != nil {
		presentItem(ctx, e.Item)
	}
	if e.Outfit != nil {
		presentOutfit(ctx, e.Outfit)
	}
}

func presentItem(ctx context.Context, it *models.ClothingItem) {
	it.ImageURL = utils.PresignImageURL(ctx, it.ImageURL)
}

func presentOutfit(ctx context.Context, o *models.Outfit) {
	o.ImageURL = utils.PresignImageURL(ctx, o.ImageURL)
}

// GetClosetHandler returns the full view state.
func (h *Handler) GetClosetHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}
