package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/importer"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

type ItemResponse struct {
	Item   models.ClothingItem `json:"item"`
	Closet closet.Snapshot     `json:"closet"`
}

type OutfitResponse struct {
	Outfit models.Outfit   `json:"outfit"`
	Closet closet.Snapshot `json:"closet"`
}

// ImportRequest names a product page. Category overrides the guessed one.
type ImportRequest struct {
	URL             string          `json:"url"`
	Category        models.Category `json:"category,omitempty"`
	StripBackground *bool           `json:"stripBackground,omitempty"`
}

type ImportResponse struct {
	Draft  importer.Draft      `json:"draft"`
	Item   models.ClothingItem `json:"item"`
	Closet closet.Snapshot     `json:"closet"`
}

// AddItemHandler stores a garment from the add form.
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Item API]")

	var req models.NewItem
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	imageURL, err := utils.OffloadImage(r.Context(), req.ImageURL, "items")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid image: %v", err), http.StatusBadRequest)
		return
	}
	req.ImageURL = imageURL

	item, err := h.closet.AddItem(req)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Item %s added to %s", item.ID, item.Category))

	presentItem(r.Context(), &item)
	utils.RespondJSON(w, http.StatusCreated, ItemResponse{Item: item, Closet: h.snapshot(r.Context())})
}

// AddOutfitHandler stores an outfit from the add form.
func (h *Handler) AddOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Outfit API]")

	var req models.NewOutfit
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	imageURL, err := utils.OffloadImage(r.Context(), req.ImageURL, "outfits")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid image: %v", err), http.StatusBadRequest)
		return
	}
	req.ImageURL = imageURL

	outfit, err := h.closet.AddOutfit(req)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Outfit %s added", outfit.ID))

	presentOutfit(r.Context(), &outfit)
	utils.RespondJSON(w, http.StatusCreated, OutfitResponse{Outfit: outfit, Closet: h.snapshot(r.Context())})
}

// ImportItemHandler reads a product page, cleans up its photo and adds the
// garment. A failed download keeps the shop's image URL; a missing model
// credential keeps the photo as downloaded.
func (h *Handler) ImportItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Import Item API]")

	var req ImportRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Category != "" && !req.Category.IsGarment() {
		utils.RespondError(w, &logMessageBuilder, closet.ErrUnknownCategory.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Importing URL: %s", req.URL))

	ctx := r.Context()
	draft, err := h.importer.Import(ctx, req.URL)
	if errors.Is(err, importer.ErrInvalidURL) {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Import failed: %v", err), http.StatusBadGateway)
		return
	}
	if req.Category != "" {
		draft.Category = req.Category
	}

	imageURL := draft.ImageURL
	if img, err := h.importer.DownloadImage(ctx, draft.ImageURL); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Image download failed, keeping remote URL: %v", err))
	} else {
		if req.StripBackground == nil || *req.StripBackground {
			cleaned, err := h.images.StripBackground(ctx, img)
			if err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Background kept: %v", err))
			}
			img = cleaned
		}
		if imageURL, err = utils.OffloadImage(ctx, img.DataURL(), "items"); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to store image: %v", err), http.StatusInternalServerError)
			return
		}
	}

	item, err := h.closet.AddItem(models.NewItem{Name: draft.Name, ImageURL: imageURL, Category: draft.Category})
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Imported %s as item %s", draft.Site, item.ID))

	presentItem(ctx, &item)
	utils.RespondJSON(w, http.StatusCreated, ImportResponse{Draft: *draft, Item: item, Closet: h.snapshot(ctx)})
}
