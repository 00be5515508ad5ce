package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"filevault/internal/models"
	"filevault/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const multipartMemory = 8 << 20

// @Summary      List stored files
// @Description  Lists every file in the shared storage area, sorted by name.
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FileInfo
// @Failure      401  {object}  ErrorResponse "Unauthorized"
// @Failure      500  {object}  ErrorResponse "Internal Server Error"
// @Router       /files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := s.storage.List(r.Context())
	if err != nil {
		s.internalError(w, r, "failed to list files", err)
		return
	}
	if files == nil {
		files = []models.FileInfo{}
	}

	writeJSON(w, http.StatusOK, files)
}

// @Summary      Upload a file
// @Description  Stores the multipart field "file" under its sanitized name, replacing any file with the same name.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to upload"
// @Success      201   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse "No file or invalid file name"
// @Failure      401   {object}  ErrorResponse "Unauthorized"
// @Failure      413   {object}  ErrorResponse "Upload too large"
// @Failure      500   {object}  ErrorResponse "File upload failed"
// @Router       /upload [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	username := GetUsernameFromContext(r.Context())

	if s.config != nil && s.config.Upload.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, handler, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()

	if handler.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	filename, err := storage.SanitizeName(handler.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	size, err := s.storage.Save(r.Context(), filename, file)
	if err != nil {
		s.internalError(w, r, "failed to save file", err)
		return
	}

	s.logger.Info("file uploaded",
		zap.String("name", filename),
		zap.Int64("size", size),
		zap.String("username", username),
	)
	s.publishFileEvent(filename, size, username)

	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("File '%s' uploaded successfully", filename),
	})
}

func (s *Server) publishFileEvent(name string, size int64, username string) {
	if s.wsHub == nil {
		return
	}

	event, err := json.Marshal(models.FileEvent{
		EventType: "file_uploaded",
		Payload: models.FileUploadedPayload{
			Name:       name,
			Size:       size,
			UploadedBy: username,
		},
	})
	if err != nil {
		s.logger.Error("failed to marshal file event", zap.Error(err))
		return
	}

	s.wsHub.PublishEvent(event)
}

// @Summary      Download a file
// @Description  Streams the stored bytes as an attachment. The name is sanitized the same way as on upload.
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        filename  path      string  true  "File name"
// @Success      200       {file}    file
// @Failure      401       {object}  ErrorResponse "Unauthorized"
// @Failure      404       {object}  ErrorResponse "File not found"
// @Failure      500       {object}  ErrorResponse "Internal Server Error"
// @Router       /download/{filename} [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "filename")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	filename, err := storage.SanitizeName(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	file, err := s.storage.Load(r.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		s.internalError(w, r, "failed to open file", err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Type", contentType)

	if seeker, ok := file.ReadCloser.(io.ReadSeeker); ok {
		http.ServeContent(w, r, file.Name, time.Time{}, seeker)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, file); err != nil {
		s.logger.Warn("download interrupted", zap.String("name", file.Name), zap.Error(err))
	}
}
