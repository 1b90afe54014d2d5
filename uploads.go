package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/sirupsen/logrus"
)

const defaultMaxImageUploadBytes int64 = 800000

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func maxImageUploadBytes() int64 {
	raw := strings.TrimSpace(os.Getenv("MAX_IMAGE_UPLOAD_BYTES"))
	if raw == "" {
		return defaultMaxImageUploadBytes
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxImageUploadBytes
	}
	return n
}

func uploadsDir() string {
	dir := strings.TrimSpace(os.Getenv("UPLOADS_DIR"))
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func extensionForMimeType(mimeType string) string {
	if mimeType == "image/png" {
		return ".png"
	}
	return ".jpg"
}

// uploadImageHandler stores an employee profile photo on local disk and
// writes a 200px-wide thumbnail next to it. Files land under
// UPLOADS_DIR/<uuid>.<ext> and are served by the reverse proxy.
func uploadImageHandler(c *gin.Context) {
	logger := config.GetLogger()
	limit := maxImageUploadBytes()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the upload size limit"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !imageMimeTypes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only JPEG and PNG images are accepted"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	if int64(len(data)) > limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the upload size limit"})
		return
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a valid image"})
		return
	}

	dir := uploadsDir()
	if err := os.MkdirAll(filepath.Join(dir, "thumbnails"), 0o755); err != nil {
		logger.WithFields(logrus.Fields{"field": "uploads"}).Error(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
		return
	}

	ext := extensionForMimeType(mimeType)
	name := uuid.NewString() + ext
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		logger.WithFields(logrus.Fields{"field": "uploads"}).Error(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
		return
	}

	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)
	thumbPath := filepath.Join(dir, "thumbnails", name)
	if err := imaging.Save(thumbnail, thumbPath); err != nil {
		logger.WithFields(logrus.Fields{"field": "uploads"}).Error(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store thumbnail"})
		return
	}

	logger.WithFields(logrus.Fields{
		"object_key": name,
		"size":       len(data),
		"mime_type":  mimeType,
	}).Info("[upload.image]")

	c.JSON(http.StatusCreated, gin.H{
		"url":           "/uploads/" + name,
		"thumbnail_url": "/uploads/thumbnails/" + name,
	})
}
