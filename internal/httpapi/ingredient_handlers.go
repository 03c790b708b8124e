package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/nutritrack/internal/jsend"
)

func (s *Server) handleIngredientByBarcode(w http.ResponseWriter, r *http.Request) {
	ing, err := s.app.Ingredients.LookupByBarcode(r.Context(), mux.Vars(r)["barcode"])
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, ing)
}

func (s *Server) handleIngredientSearch(w http.ResponseWriter, r *http.Request) {
	products, err := s.app.Ingredients.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, products)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.app.Recipes.ListForUser(r.Context(), userID(r))
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, recipes)
}
