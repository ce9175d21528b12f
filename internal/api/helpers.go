package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sectorchat/internal/domain/dto"
	"sectorchat/internal/domain/models"
	"sectorchat/internal/sectors"
	"sectorchat/internal/service"
)

// windowFromQuery parses the optional start/end query parameters.
// Defaults mirror the agent prompt: last week through today.
func windowFromQuery(c *gin.Context) (models.DateWindow, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	window := models.DateWindow{Start: today.AddDate(0, 0, -7), End: today}

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return models.DateWindow{}, err
		}
		window.Start = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return models.DateWindow{}, err
		}
		window.End = parsed
	}
	return window, nil
}

// respondServiceError maps the error taxonomy onto HTTP statuses:
// invalid arguments → 400, exhausted look-ahead → 404, upstream/transport
// failures → 502, anything else → 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		nde *service.NoTradingDataError
		ue  *sectors.UpstreamError
		te  *sectors.TransportError
	)
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
	case errors.As(err, &nde):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no trading data found", err))
	case errors.As(err, &ue), errors.As(err, &te):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("upstream provider failed", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("request failed", err))
	}
}

// passthrough relays one ticker-keyed provider document unchanged.
func (h *Handler) passthrough(c *gin.Context, fetch func(context.Context, string) (json.RawMessage, error)) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	raw, err := fetch(c.Request.Context(), ticker)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
