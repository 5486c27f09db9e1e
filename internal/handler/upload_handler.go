package handler

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kronika/internal/logger"
	"golang.org/x/image/draw"
)

const thumbnailWidth = 480

// UploadImage stores an uploaded image under a unique name, decodes its
// dimensions, and writes a scaled jpeg thumbnail next to it.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image in request")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", a.uploadDir).Msg("failed to create upload directory")
		respondError(c, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	path := filepath.Join(a.uploadDir, name)

	if err := c.SaveUploadedFile(file, path); err != nil {
		logger.Error().Err(err).Msg("failed to save upload")
		respondError(c, http.StatusInternalServerError, "failed to save file")
		return
	}

	width, height, thumbURL := a.processImage(path, name)

	fileURL := a.uploadURL + "/" + name
	c.JSON(http.StatusOK, gin.H{
		"message":  "upload complete",
		"url":      fileURL,
		"thumbUrl": thumbURL,
		"width":    width,
		"height":   height,
	})
}

// processImage decodes the stored file and writes a scaled thumbnail.
// Failures leave the original upload usable, so they only log.
func (a *API) processImage(path, name string) (int, int, string) {
	source, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to reopen upload")
		return 0, 0, ""
	}
	defer source.Close()

	img, _, err := image.Decode(source)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to decode upload")
		return 0, 0, ""
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= thumbnailWidth {
		return width, height, ""
	}

	thumbHeight := height * thumbnailWidth / width
	thumb := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, thumbHeight))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, bounds, draw.Over, nil)

	thumbName := strings.TrimSuffix(name, filepath.Ext(name)) + "-thumb.jpg"
	out, err := os.Create(filepath.Join(a.uploadDir, thumbName))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create thumbnail file")
		return width, height, ""
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		logger.Warn().Err(err).Msg("failed to encode thumbnail")
		return width, height, ""
	}

	return width, height, a.uploadURL + "/" + thumbName
}
