package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"tesBack/utils"
)

const maxImageBytes = 10 << 20

type imageUploader interface {
	Upload(ctx context.Context, file []byte, folder string) (string, error)
}

// UploadHandler accepts one multipart "image" and returns its public URL.
type UploadHandler struct {
	Uploader imageUploader
}

var uploadFolders = map[string]bool{"properties": true, "reviews": true}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		fail(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "properties"
	}
	if !uploadFolders[folder] {
		fail(w, http.StatusBadRequest, "Invalid folder")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		fail(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		fail(w, http.StatusBadRequest, "Image too large")
		return
	}

	url, err := h.Uploader.Upload(r.Context(), data, folder)
	if errors.Is(err, utils.ErrUnsupportedImage) {
		fail(w, http.StatusBadRequest, "Only JPEG, PNG and WebP images are accepted")
		return
	}
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"url": url})
}
