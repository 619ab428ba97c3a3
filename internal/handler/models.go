package handler

import (
	"net/http"

	"github.com/masabou247/llm-evaluator/internal/registry"
)

func Models(models []registry.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, models)
	}
}
