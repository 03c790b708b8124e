package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mmynk/nutritrack/internal/jsend"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/service"
)

// Server actions are form posts. They never answer with an error status:
// the browser is sent back to the affected page with 303, and failures add ?error=<message>.

func (s *Server) actionCreateRecipe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/app/recipes", models.Validationf("invalid form: %v", err))
		return
	}
	lines, err := formLines(r.PostForm)
	if err != nil {
		redirectWithError(w, r, "/app/recipes", err)
		return
	}
	recipe, err := s.app.Recipes.Create(r.Context(), service.CreateRecipeRequest{
		UserID: userID(r),
		Name:   r.PostForm.Get("name"),
		Lines:  lines,
	})
	if err != nil {
		redirectWithError(w, r, "/app/recipes", err)
		return
	}
	redirectTo(w, r, recipePath(recipe.ID))
}

func (s *Server) actionDuplicateRecipe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	recipe, err := s.app.Recipes.Duplicate(r.Context(), service.DuplicateRecipeRequest{
		ID:     id,
		UserID: userID(r),
		Name:   r.FormValue("name"),
	})
	if err != nil {
		redirectWithError(w, r, recipePath(id), err)
		return
	}
	redirectTo(w, r, recipePath(recipe.ID))
}

func (s *Server) actionDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.app.Recipes.Delete(r.Context(), id, userID(r)); err != nil {
		redirectWithError(w, r, recipePath(id), err)
		return
	}
	redirectTo(w, r, "/app/recipes")
}

func (s *Server) actionRenameRecipe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	name := r.FormValue("name")
	if _, err := s.app.Recipes.Update(r.Context(), service.UpdateRecipeRequest{
		ID:     id,
		UserID: userID(r),
		Name:   &name,
	}); err != nil {
		redirectWithError(w, r, recipePath(id), err)
		return
	}
	redirectTo(w, r, recipePath(id))
}

func (s *Server) actionAddRecipeLine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req, err := addLineFromForm(r, id)
	if err == nil {
		_, err = s.app.Recipes.AddIngredientLine(r.Context(), req)
	}
	if err != nil {
		redirectWithError(w, r, recipePath(id), err)
		return
	}
	redirectTo(w, r, recipePath(id))
}

func (s *Server) actionRemoveRecipeLine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.app.Recipes.RemoveIngredientLine(r.Context(), removeLineFromForm(r, id)); err != nil {
		redirectWithError(w, r, recipePath(id), err)
		return
	}
	redirectTo(w, r, recipePath(id))
}

func (s *Server) actionAddMealLine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req, err := addLineFromForm(r, id)
	if err == nil {
		_, err = s.app.Meals.AddIngredientLine(r.Context(), req)
	}
	if err != nil {
		redirectWithError(w, r, mealPath(id), err)
		return
	}
	redirectTo(w, r, mealPath(id))
}

func (s *Server) actionRemoveMealLine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.app.Meals.RemoveIngredientLine(r.Context(), removeLineFromForm(r, id)); err != nil {
		redirectWithError(w, r, mealPath(id), err)
		return
	}
	redirectTo(w, r, mealPath(id))
}

func (s *Server) actionRemoveMealFromDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	target := "/app/days/" + url.PathEscape(vars["date"])
	if _, err := s.app.Days.RemoveMealFromDay(r.Context(), vars["date"], userID(r), vars["mealId"]); err != nil {
		redirectWithError(w, r, target, err)
		return
	}
	redirectTo(w, r, target)
}

func addLineFromForm(r *http.Request, parentID string) (service.AddLineRequest, error) {
	qty, err := parseQuantity(r.FormValue("quantityInGrams"))
	if err != nil {
		return service.AddLineRequest{}, err
	}
	return service.AddLineRequest{
		ParentID:        parentID,
		UserID:          userID(r),
		IngredientID:    r.FormValue("ingredientId"),
		QuantityInGrams: qty,
	}, nil
}

func removeLineFromForm(r *http.Request, parentID string) service.RemoveLineRequest {
	return service.RemoveLineRequest{
		ParentID:     parentID,
		UserID:       userID(r),
		IngredientID: r.FormValue("ingredientId"),
	}
}

// formLines pairs the repeated ingredientId and quantityInGrams fields.
func formLines(form url.Values) ([]service.IngredientLineInput, error) {
	ids := form["ingredientId"]
	qtys := form["quantityInGrams"]
	if len(ids) != len(qtys) {
		return nil, models.Validationf("each ingredient needs a quantity")
	}
	lines := make([]service.IngredientLineInput, 0, len(ids))
	for i, id := range ids {
		qty, err := parseQuantity(qtys[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, service.IngredientLineInput{IngredientID: id, QuantityInGrams: qty})
	}
	return lines, nil
}

func parseQuantity(raw string) (float64, error) {
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, models.Validationf("quantity in grams must be a number, got %q", raw)
	}
	return qty, nil
}

func recipePath(id string) string { return "/app/recipes/" + url.PathEscape(id) }

func mealPath(id string) string { return "/app/meals/" + url.PathEscape(id) }

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError hides infrastructure details behind a generic message.
func redirectWithError(w http.ResponseWriter, r *http.Request, path string, err error) {
	msg := err.Error()
	if jsend.StatusCode(err) >= http.StatusInternalServerError {
		slog.Error("Server action failed", "path", r.URL.Path, "error", err)
		msg = "something went wrong, please try again"
	} else if errors.Is(err, models.ErrAuth) {
		msg = "you do not have access to that item"
	}
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
