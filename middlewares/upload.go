package middlewares

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"inkwell/models"
	"inkwell/views"
)

// MaxUploadSize caps uploaded images at 5 MiB. A file of exactly this size is
// accepted; one byte more is rejected.
const MaxUploadSize = 5 << 20

// Allowed image suffixes, matched case-sensitively against the original
// filename.
var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

type uploadContextKey struct{}

// Uploader validates and stores at most one image file before a post handler
// runs. The handler sees either no file or one stored file with a generated
// name; rejected uploads never reach it.
type Uploader struct {
	Dir   string // destination directory, created lazily
	Field string // multipart form field name
}

// UploadError is a rejected upload tagged with the view the user submitted
// from, so the rejection re-renders the form they were on.
type UploadError struct {
	Message string
	Form    string
}

func (e *UploadError) Error() string { return e.Message }

// Filter wraps a handler that accepts an optional image upload. origin names
// the view ("create.html" or "edit.html") that a rejection re-renders.
func (u *Uploader) Filter(origin string, v *views.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stored, reject, err := u.accept(r)
			if err != nil {
				v.HttpError(w, "Upload failed", http.StatusInternalServerError, err)
				return
			}
			if reject != "" {
				renderRejection(w, r, v, &UploadError{Message: reject, Form: origin})
				return
			}

			ctx := context.WithValue(r.Context(), uploadContextKey{}, stored)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accept returns the generated filename of a stored upload, a rejection
// message for an invalid one, or an error for an IO failure. All three are
// zero when no file was sent.
func (u *Uploader) accept(r *http.Request) (string, string, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return "", "", nil
		}
	}

	file, header, err := r.FormFile(u.Field)
	if err != nil {
		// Covers both a missing field and a non-multipart body.
		return "", "", nil
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		return "", "", nil
	}
	if !hasAllowedExtension(header.Filename) {
		return "", "Only .jpg, .jpeg, .png and .gif images are allowed", nil
	}
	if header.Size > MaxUploadSize {
		return "", "Image must be 5 MB or smaller", nil
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating upload directory")
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", "", errors.Wrap(err, "creating upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", "", errors.Wrap(err, "storing upload")
	}

	return name, "", nil
}

// Discard removes a stored upload that ended up without a persisted row
// referencing it.
func (u *Uploader) Discard(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(u.Dir, filepath.Base(name))); err != nil {
		log.Printf("discarding upload %s: %v", name, err)
	}
}

// UploadedFile returns the generated filename stored by Filter, or "" when the
// request carried no file.
func UploadedFile(r *http.Request) string {
	name, _ := r.Context().Value(uploadContextKey{}).(string)
	return name
}

func hasAllowedExtension(filename string) bool {
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func renderRejection(w http.ResponseWriter, r *http.Request, v *views.Registry, e *UploadError) {
	echo := models.Post{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	data := map[string]any{
		"Title": "New Post",
		"Error": e.Message,
	}
	if e.Form == "edit.html" {
		data["Title"] = "Edit Post"
		if id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err == nil {
			echo.ID = id
		}
	}
	data["Post"] = echo

	v.Render(w, http.StatusBadRequest, e.Form, data)
}
