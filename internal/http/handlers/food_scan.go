package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/gateway"
	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/store"
)

const formFieldImage = "image"

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

type FoodScanHandler struct {
	log         *logger.Logger
	constraints gateway.Constraints
}

func NewFoodScanHandler(log *logger.Logger, constraints gateway.Constraints) *FoodScanHandler {
	return &FoodScanHandler{
		log:         log.With("handler", "FoodScanHandler"),
		constraints: constraints,
	}
}

type foodScanView struct {
	store.State[foodscan.Result]
	Percentages *meal.Percentages `json:"percentages,omitempty"`
}

func newFoodScanView(st store.State[foodscan.Result]) foodScanView {
	v := foodScanView{State: st}
	if st.HasValue {
		p := st.Value.Analysis.Percentages()
		v.Percentages = &p
	}
	return v
}

// GET /api/food-scan
func (h *FoodScanHandler) Get(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	response.RespondOK(c, newFoodScanView(s.FoodScan.Get()))
}

// POST /api/food-scan (multipart "image")
func (h *FoodScanHandler) Scan(c *gin.Context) {
	s := httpMW.SessionFrom(c)

	fh, err := c.FormFile(formFieldImage)
	if err != nil {
		if tooLarge(err) {
			respondErr(c, h.constraints.TooLarge())
			return
		}
		respondErr(c, &gateway.InvalidInputError{Field: formFieldImage, Reason: "Please select an image file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	defer f.Close()

	// One byte past the cap is enough to tell the upload is too large.
	limit := h.constraints.MaxSizeBytes
	if limit <= 0 {
		limit = gateway.DefaultMaxUploadBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		if tooLarge(err) {
			respondErr(c, h.constraints.TooLarge())
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}

	u := gateway.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, err := s.ScanFood(c.Request.Context(), u); err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, newFoodScanView(s.FoodScan.Get()))
}

// DELETE /api/food-scan
func (h *FoodScanHandler) Clear(c *gin.Context) {
	httpMW.SessionFrom(c).FoodScan.Clear()
	c.Status(http.StatusNoContent)
}
