package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/store"
)

type PlanHandler struct {
	log *logger.Logger
}

func NewPlanHandler(log *logger.Logger) *PlanHandler {
	return &PlanHandler{log: log.With("handler", "PlanHandler")}
}

// mealPlanView adds the derived daily totals to the slot state. Totals and
// Percentages are nil until a plan exists.
type mealPlanView struct {
	store.State[meal.Plan]
	Totals      *meal.Macros      `json:"totals,omitempty"`
	Percentages *meal.Percentages `json:"percentages,omitempty"`
}

func newMealPlanView(st store.State[meal.Plan]) mealPlanView {
	v := mealPlanView{State: st}
	if st.HasValue {
		t := meal.Totals(st.Value)
		p := t.Percentages()
		v.Totals = &t
		v.Percentages = &p
	}
	return v
}

type workoutPlanView struct {
	store.State[workout.Plan]
	ExerciseCount int `json:"exercise_count"`
}

func newWorkoutPlanView(st store.State[workout.Plan]) workoutPlanView {
	v := workoutPlanView{State: st}
	if st.HasValue {
		v.ExerciseCount = st.Value.ExerciseCount()
	}
	return v
}

// GET /api/meal-plan
func (h *PlanHandler) GetMealPlan(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	response.RespondOK(c, newMealPlanView(s.MealPlan.Get()))
}

// POST /api/meal-plan/generate
func (h *PlanHandler) GenerateMealPlan(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	if _, err := s.GenerateMealPlan(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, newMealPlanView(s.MealPlan.Get()))
}

// DELETE /api/meal-plan
func (h *PlanHandler) ClearMealPlan(c *gin.Context) {
	httpMW.SessionFrom(c).MealPlan.Clear()
	c.Status(http.StatusNoContent)
}

// GET /api/workout-plan
func (h *PlanHandler) GetWorkoutPlan(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	response.RespondOK(c, newWorkoutPlanView(s.WorkoutPlan.Get()))
}

// POST /api/workout-plan/generate
func (h *PlanHandler) GenerateWorkoutPlan(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	if _, err := s.GenerateWorkoutPlan(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, newWorkoutPlanView(s.WorkoutPlan.Get()))
}

// DELETE /api/workout-plan
func (h *PlanHandler) ClearWorkoutPlan(c *gin.Context) {
	httpMW.SessionFrom(c).WorkoutPlan.Clear()
	c.Status(http.StatusNoContent)
}
