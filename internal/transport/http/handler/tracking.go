package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/email-otp-api/internal/application/verification"
	"github.com/go-chi/chi/v5"
)

// pixelGIF is a 1x1 transparent GIF.
var pixelGIF, _ = base64.StdEncoding.DecodeString("R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")

// TrackingHandler serves the open-tracking pixel.
type TrackingHandler struct {
	svc verification.Service
}

func NewTrackingHandler(svc verification.Service) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

// Pixel marks the matching record as opened and always responds with the same
// image, whether or not anything matched. Caching is disabled so every render
// of the mail fetches it, and the remote party learns nothing from the response.
func (h *TrackingHandler) Pixel(w http.ResponseWriter, r *http.Request) {
	h.svc.TrackOpen(chi.URLParam(r, "trackingID"))

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Content-Length", strconv.Itoa(len(pixelGIF)))
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pixelGIF)
}
