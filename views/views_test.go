package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inkwell/models"
)

func TestRenderHome(t *testing.T) {
	v := New()
	rec := httptest.NewRecorder()

	v.Render(rec, http.StatusOK, "home.html", map[string]any{
		"Title": "Home",
		"Posts": []models.Post{
			{ID: 1, Title: "Hello world", Content: "First!", CreatedAt: time.Now()},
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Hello world")
}

func TestRenderDetailMarkdown(t *testing.T) {
	v := New()
	rec := httptest.NewRecorder()

	v.Render(rec, http.StatusOK, "detail.html", map[string]any{
		"Title": "A post",
		"Post": models.Post{
			ID:        1,
			Title:     "A post",
			Image:     models.DefaultImage,
			Content:   "Some **bold** text",
			CreatedAt: time.Now(),
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>bold</strong>")
}

func TestRenderDetailHidesDefaultImage(t *testing.T) {
	v := New()
	rec := httptest.NewRecorder()

	v.Render(rec, http.StatusOK, "detail.html", map[string]any{
		"Title": "A post",
		"Post": models.Post{
			ID:        1,
			Title:     "A post",
			Image:     models.DefaultImage,
			Content:   "Body",
			CreatedAt: time.Now(),
		},
	})

	assert.NotContains(t, rec.Body.String(), "<img")
}

func TestRenderError(t *testing.T) {
	v := New()
	rec := httptest.NewRecorder()

	v.RenderError(rec, http.StatusNotFound, "Post not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found")
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	v := New()
	rec := httptest.NewRecorder()

	v.Render(rec, http.StatusOK, "nope.html", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
