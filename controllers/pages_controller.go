package controllers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"inkwell/validation"
	"inkwell/views"
)

// PageHandler serves the static pages and the contact form.
type PageHandler struct {
	Views *views.Registry
}

// SetupPageRoutes registers the about and contact routes on the router.
func (h *PageHandler) SetupPageRoutes(r *mux.Router) {
	r.HandleFunc("/about", h.About).Methods("GET")
	r.HandleFunc("/contact", h.Contact).Methods("GET")
	r.HandleFunc("/contact", h.ContactSubmit).Methods("POST")
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "about.html", map[string]any{
		"Title": "About",
	})
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "contact.html", map[string]any{
		"Title": "Contact",
	})
}

// ContactSubmit validates the contact form. Submissions are not persisted or
// forwarded anywhere; a valid one is logged and acknowledged on the page.
func (h *PageHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Views.RenderError(w, http.StatusBadRequest, "Bad request")
		return
	}

	form := validation.ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	data := map[string]any{
		"Title":   "Contact",
		"Name":    form.Name,
		"Email":   form.Email,
		"Message": form.Message,
	}

	if err := validation.ValidateContactForm(form); err != nil {
		data["Error"] = err.Error()
		h.Views.Render(w, http.StatusBadRequest, "contact.html", data)
		return
	}

	log.Printf("contact submission from %s <%s>", form.Name, form.Email)

	h.Views.Render(w, http.StatusOK, "contact.html", map[string]any{
		"Title":   "Contact",
		"Success": "Thanks for your message! We'll get back to you soon.",
	})
}
