package api

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
)

// ConfirmationHandler renders the booking confirmation page purely from
// the query parameters handed to it. It never reads the store, so the
// page shows the booking as it was at submission time.
type ConfirmationHandler struct {
	templatePath string
}

func NewConfirmationHandler() *ConfirmationHandler {
	return &ConfirmationHandler{
		templatePath: filepath.Join("internal", "templates", "confirmation_page.html"),
	}
}

func (h *ConfirmationHandler) Show(w http.ResponseWriter, r *http.Request) {
	params := entities.ParseConfirmationParams(r.URL.Query())

	tmpl, err := template.ParseFiles(h.templatePath)
	if err != nil {
		log.Printf("Error parsing confirmation template (%s): %v", h.templatePath, err)
		http.Error(w, "Could not render confirmation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, params); err != nil {
		log.Printf("Error rendering confirmation page: %v", err)
	}
}
