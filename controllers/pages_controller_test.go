package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAboutPage(t *testing.T) {
	handler, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About")
}

func TestContactPage(t *testing.T) {
	handler, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contact")
}

func TestContactSubmitMissingFields(t *testing.T) {
	handler, _, _ := newTestApp(t)

	rec := postForm(t, handler, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {""},
		"message": {""},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required")
	assert.Contains(t, rec.Body.String(), "Message is required")
	// Submitted values are echoed back into the form.
	assert.Contains(t, rec.Body.String(), "Ada")
}

func TestContactSubmitInvalidEmail(t *testing.T) {
	handler, _, _ := newTestApp(t)

	rec := postForm(t, handler, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"not-an-address"},
		"message": {"Hello there"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email must be a valid address")
	assert.Contains(t, rec.Body.String(), "not-an-address")
}

func TestContactSubmitSuccess(t *testing.T) {
	handler, _, _ := newTestApp(t)

	rec := postForm(t, handler, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello there"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks for your message")
}
