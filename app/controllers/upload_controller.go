package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/storage"
)

// Image types accepted by the upload endpoint. The check runs on sniffed
// content, not the client-declared Content-Type.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadController stores product images through the configured disk.
type UploadController struct {
	disks    *storage.Manager
	maxBytes int64
}

func NewUploadController(disks *storage.Manager, maxBytes int64) *UploadController {
	return &UploadController{disks: disks, maxBytes: maxBytes}
}

// Store handles POST /upload: a multipart form with the file under the
// "image" field. The stored name is random, so uploads never collide and
// the client-supplied filename never reaches the disk.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusBadRequest,
				fmt.Sprintf("File exceeds the %d byte limit", c.maxBytes))
			return
		}
		response.Error(w, http.StatusBadRequest, "An image file is required under the \"image\" field")
		return
	}
	defer file.Close()

	ext, ok := sniffImageExt(file, header)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are accepted")
		return
	}

	path := fmt.Sprintf("uploads/%s/%s%s", time.Now().UTC().Format("2006/01"), randomName(), ext)
	if err := c.disks.Disk().PutStream(path, file); err != nil {
		internalError(w, r, "store upload failed", err)
		return
	}

	response.Success(w, map[string]interface{}{
		"filePath": path,
		"url":      c.disks.Disk().URL(path),
	})
}

// sniffImageExt detects the real content type from the first 512 bytes and
// maps it to a canonical extension. The reader is rewound before returning.
func sniffImageExt(file multipart.File, header *multipart.FileHeader) (string, bool) {
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if _, err := file.Seek(0, 0); err != nil {
		return "", false
	}

	detected := http.DetectContentType(buf[:n])
	if ext, ok := allowedImageTypes[detected]; ok {
		return ext, true
	}

	// DetectContentType cannot tell some encoder variants apart, so fall
	// back to the declared extension when it agrees with an allowed type.
	declared := strings.ToLower(filepath.Ext(header.Filename))
	for _, ext := range allowedImageTypes {
		if declared == ext || (declared == ".jpeg" && ext == ".jpg") {
			if strings.HasPrefix(detected, "image/") {
				return ext, true
			}
		}
	}
	return "", false
}

func randomName() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
