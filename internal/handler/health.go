package handler

import (
	"net/http"

	"github.com/masabou247/llm-evaluator/internal/registry"
)

// Wiring reports whether a provider has an adapter behind it.
type Wiring interface {
	Wired(p registry.Provider) bool
}

type healthResponse struct {
	Status    string                     `json:"status"`
	Models    int                        `json:"models"`
	Providers map[registry.Provider]bool `json:"providers"`
}

func Health(wiring Wiring, modelCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers := make(map[registry.Provider]bool)
		for _, p := range registry.Providers() {
			providers[p] = wiring.Wired(p)
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Models:    modelCount,
			Providers: providers,
		})
	}
}
