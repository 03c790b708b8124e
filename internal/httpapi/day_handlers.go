package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mmynk/nutritrack/internal/jsend"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/service"
)

type addMealBody struct {
	MealID string `json:"mealId"`
}

type addMealsBody struct {
	MealIDs []string `json:"mealIds"`
}

// handleGetDay returns the assembled day, or null data when nothing was logged.
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	day, err := s.app.Days.GetAssembledDay(r.Context(), mux.Vars(r)["date"], userID(r))
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, day)
}

// handleGetDays assembles ?dates=a,b in input order.
func (s *Server) handleGetDays(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("dates")
	if strings.TrimSpace(raw) == "" {
		jsend.FromError(w, r, models.Validationf("dates query parameter is required"))
		return
	}
	var dates []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dates = append(dates, d)
		}
	}
	days, err := s.app.Days.GetMultipleAssembledDays(r.Context(), dates, userID(r))
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, days)
}

func (s *Server) handleAddMealToDay(w http.ResponseWriter, r *http.Request) {
	var body addMealBody
	if err := decodeJSON(w, r, &body); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	day, err := s.app.Days.AddMealToDay(r.Context(), service.AddMealToDayRequest{
		Date:   mux.Vars(r)["date"],
		UserID: userID(r),
		MealID: body.MealID,
	})
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, day)
}

func (s *Server) handleAddMealsToDay(w http.ResponseWriter, r *http.Request) {
	var body addMealsBody
	if err := decodeJSON(w, r, &body); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	day, err := s.app.Days.AddMealsToDay(r.Context(), service.AddMealsToDayRequest{
		Date:    mux.Vars(r)["date"],
		UserID:  userID(r),
		MealIDs: body.MealIDs,
	})
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, day)
}

// handleAddMealsToDays takes a JSON array of {date, mealIds}.
func (s *Server) handleAddMealsToDays(w http.ResponseWriter, r *http.Request) {
	var entries []service.DayMeals
	if err := decodeJSON(w, r, &entries); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	days, err := s.app.Days.AddMealsToMultipleDays(r.Context(), userID(r), entries)
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, days)
}
