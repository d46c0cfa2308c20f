package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/utils"
)

const maxUploadBytes = 10 << 20

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// StripBackgroundHandler takes a multipart "image" upload and returns the
// cleaned photo as a data URL ready for the add form. When the model fails
// the original photo comes back.
func (h *Handler) StripBackgroundHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Strip Background API]")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Error reading file %s", header.Filename), http.StatusBadRequest)
		return
	}
	mime := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("%s is not an image", header.Filename), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Processing %s (%d bytes)", header.Filename, len(data)))

	out, err := h.images.StripBackground(r.Context(), gateway.Image{Data: data, MIMEType: mime})
	if respondGatewayError(w, &logMessageBuilder, err) {
		return
	}
	utils.RespondJSON(w, http.StatusOK, ImageResponse{ImageURL: out.DataURL()})
}
