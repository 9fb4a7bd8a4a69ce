package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Spok95/factory-bot/internal/domain/recipes"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Server struct {
	srv *http.Server
}

type ingredientView struct {
	ID       int64           `json:"id"`
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

type recipeView struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Instructions string           `json:"instructions"`
	Ingredients  []ingredientView `json:"ingredients"`
}

func renderRecipes(list []recipes.Recipe) []recipeView {
	out := make([]recipeView, 0, len(list))
	for _, rc := range list {
		v := recipeView{
			ID:           rc.ID,
			Name:         rc.Name,
			Description:  rc.Description,
			Instructions: rc.Instructions,
			Ingredients:  make([]ingredientView, 0, len(rc.Ingredients)),
		}
		for _, ing := range rc.Ingredients {
			v.Ingredients = append(v.Ingredients, ingredientView{
				ID:       ing.ID,
				Product:  ing.Product,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}
		out = append(out, v)
	}
	return out
}

func New(addr string, exposeMetrics bool, recipesRepo *recipes.Repo, log *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	mux.HandleFunc("GET /api/recipes", func(w http.ResponseWriter, r *http.Request) {
		list, err := recipesRepo.List(r.Context())
		if err != nil {
			log.Error("recipe list failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(renderRecipes(list))
	})

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
