package clinicfolio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 5 << 20 // 5MB
)

// processImage decodes an image from src, resizes it to maxImageWidth when
// wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Upload, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Upload{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	// A uuid suffix keeps filenames unique without probing the directory.
	base := slugifyFilename(originalName)
	if base == "" {
		base = "image"
	}
	filename := base + "-" + uuid.New().String()[:8] + ".jpg"

	return Upload{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	return Slugify(strings.TrimSuffix(name, ext))
}

// handleUpload accepts a multipart image, enforces the MIME and size limits,
// stores the processed JPEG under UploadsDir, and returns the stored path.
func (a *App) handleUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return Fail(c, http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return Fail(c, http.StatusBadRequest, "File too large (max 5MB)")
	}

	src, err := file.Open()
	if err != nil {
		return FailInternal(c, err)
	}
	defer src.Close()

	// Sniff the real content type; the client-supplied header is not trusted.
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return Fail(c, http.StatusBadRequest, "File is not an image")
	}

	up, data, err := processImage(io.MultiReader(bytes.NewReader(head[:n]), src), file.Filename)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	if err := os.MkdirAll(a.Config.UploadsDir, 0o755); err != nil {
		return FailInternal(c, fmt.Errorf("create uploads dir: %w", err))
	}
	if err := os.WriteFile(filepath.Join(a.Config.UploadsDir, up.Filename), data, 0o644); err != nil {
		return FailInternal(c, fmt.Errorf("write image: %w", err))
	}

	up.Path = "/uploads/" + up.Filename
	if err := a.Store.SaveUpload(up); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, up, "Image uploaded")
}

func (a *App) handleListUploads(c echo.Context) error {
	uploads, err := a.Store.ListUploads()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, uploads)
}

func (a *App) handleDeleteUpload(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return Fail(c, http.StatusBadRequest, "Filename required")
	}
	// Ignore filesystem errors if the file is already gone.
	_ = os.Remove(filepath.Join(a.Config.UploadsDir, filename))
	if err := a.Store.DeleteUpload(filename); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Image deleted")
}
