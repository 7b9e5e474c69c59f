package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/response"
	"github.com/lumicea/lumicea/pkg/storage"
)

// maxUploadBytes caps product and blog imagery at 10 MB.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// MediaController handles admin image uploads to the configured disk.
type MediaController struct{}

func NewMediaController() *MediaController {
	return &MediaController{}
}

// Upload accepts a multipart "file" field, stores it under media/YYYY/MM,
// and returns the public URL.
func (c *MediaController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ValidationError(w, map[string]string{"file": "The file field is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		response.ValidationError(w, map[string]string{"file": "Unsupported file type"})
		return
	}

	name := make([]byte, 16)
	_, _ = rand.Read(name)
	path := time.Now().Format("media/2006/01") + "/" + hex.EncodeToString(name) + ext

	if err := storage.PutStream(path, file); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not store file")
		return
	}

	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}

// Delete removes a stored file.
func (c *MediaController) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if strings.Contains(body.Path, "..") || !strings.HasPrefix(body.Path, "media/") {
		response.ValidationError(w, map[string]string{"path": "Invalid media path"})
		return
	}
	if !storage.Exists(body.Path) {
		response.NotFound(w)
		return
	}
	if err := storage.Delete(body.Path); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete file")
		return
	}
	response.Success(w, map[string]string{"deleted": body.Path})
}
