package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// SelectRequest opens a detail view. Without Kind the id is looked up among
// items first, then treated as an outfit.
type SelectRequest struct {
	ID   string            `json:"id"`
	Kind models.EntityKind `json:"kind,omitempty"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type TabRequest struct {
	Tab models.Category `json:"tab"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type AddFormRequest struct {
	Open bool `json:"open"`
}

type DragRequest struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

func (h *Handler) SelectHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Select API]")

	var req SelectRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		utils.RespondError(w, &logMessageBuilder, "id is required", http.StatusBadRequest)
		return
	}

	if req.Kind == "" {
		h.closet.SelectEntity(req.ID)
	} else if !h.closet.Select(models.EntityRef{Kind: req.Kind, ID: req.ID}) {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("No %s with id %s", req.Kind, req.ID), http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) BackHandler(w http.ResponseWriter, r *http.Request) {
	h.closet.GoBack()
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) SwitchToItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Switch To Item API]")

	var req IDRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.closet.SwitchToItem(req.ID) {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("No item with id %s", req.ID), http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) ChangeTabHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Tab API]")

	var req TabRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.closet.ChangeTab(req.Tab); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("%v: %q", err, req.Tab), http.StatusBadRequest)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)

	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, "[Search API]")
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	h.closet.SetSearchQuery(req.Query)
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) AddFormHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)

	var req AddFormRequest
	if err := decodeBody(r, &req); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, "[Add Form API]")
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Open {
		h.closet.OpenAddForm()
	} else {
		h.closet.CloseAddForm()
	}
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) DragStartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Drag API]")

	var req DragRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil || req.ID == "" {
		utils.RespondError(w, &logMessageBuilder, "id and a valid category are required", http.StatusBadRequest)
		return
	}
	h.closet.BeginDrag(req.ID, category)
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

func (h *Handler) DragEndHandler(w http.ResponseWriter, r *http.Request) {
	h.closet.EndDrag()
	utils.RespondJSON(w, http.StatusOK, h.snapshot(r.Context()))
}

// TrashHandler starts deleting the dragged entity. The response shows it as
// pending; it disappears from later snapshots once the grace delay passes.
func (h *Handler) TrashHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Trash API]")

	if !h.closet.DropInTrash() {
		utils.RespondError(w, &logMessageBuilder, "Nothing is being dragged", http.StatusConflict)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, h.snapshot(r.Context()))
}
