package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/gateway"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/apierr"
	"github.com/yungbote/gymcoach/internal/session"
)

// classify maps session and gateway errors onto HTTP statuses. Generation
// failures never leak backend detail; the message is always the generic one.
func classify(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	if session.IsProfileRequired(err) {
		return apierr.New(http.StatusConflict, "profile_required", err)
	}
	if errors.Is(err, session.ErrNotFound) {
		return apierr.New(http.StatusNotFound, "session_not_found", err)
	}
	var inv *gateway.InvalidInputError
	if errors.As(err, &inv) {
		return apierr.New(http.StatusBadRequest, "invalid_input", errors.New(inv.Reason))
	}
	switch kind := gateway.Kind(err); kind {
	case gateway.KindCanceled:
		return apierr.New(http.StatusRequestTimeout, kind, errors.New(gateway.GenericFailure))
	default:
		return apierr.New(http.StatusBadGateway, kind, errors.New(gateway.GenericFailure))
	}
}

func respondErr(c *gin.Context, err error) {
	var fe profile.FieldErrors
	if errors.As(err, &fe) {
		response.RespondFieldErrors(c, "invalid_profile", err, fe)
		return
	}
	_ = c.Error(err)
	response.RespondAPIError(c, classify(err))
}
