package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sectorchat/internal/chat"
	"sectorchat/internal/domain/dto"
	"sectorchat/internal/domain/models"
	"sectorchat/internal/sectors"
	"sectorchat/internal/service"
)

// Handler provides HTTP handlers for the chat operation and the direct tool
// endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP parameters
//   - Delegate to the chat service, volume service, or endpoint client
//   - Translate results into response DTOs
//   - Map the error taxonomy onto HTTP status codes
type Handler struct {
	chat   chat.Service
	volume service.VolumeService
	api    sectors.API
}

// NewHandler constructs a new Handler instance.
func NewHandler(chatSvc chat.Service, volumeSvc service.VolumeService, api sectors.API) *Handler {
	return &Handler{chat: chatSvc, volume: volumeSvc, api: api}
}

// Chat handles POST /api/v1/chat requests: one conversational turn against
// the financial agent.
//
// Chat godoc
// @Summary      Ask the financial agent
// @Description  Runs one conversational turn; omit conversation_id to start a new conversation
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ChatRequest  true  "Question and optional conversation ID"
// @Success      200      {object}  dto.ChatResponse       "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse      "Unknown conversation"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid chat request", err))
		return
	}

	conv, answer, err := h.chat.Ask(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("conversation not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("chat turn failed", err))
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		ConversationID: conv.ID,
		Answer:         answer,
		Turns:          conv.Len(),
	})
}

// TopVolume handles GET /api/v1/volume/top requests.
//
// Query Parameters:
//   - start (string, optional): start date in YYYY-MM-DD; defaults to a week ago.
//   - end   (string, optional): end date in YYYY-MM-DD; defaults to today.
//   - top_n (int, optional): number of companies to return; defaults to 5.
//
// TopVolume godoc
// @Summary      Top companies by transaction volume
// @Description  Aggregates per-company volume over the range, skipping non-trading start days
// @Tags         volume
// @Produce      json
// @Param        start  query     string  false  "Start date in YYYY-MM-DD" example(2024-07-08)
// @Param        end    query     string  false  "End date in YYYY-MM-DD"   example(2024-07-12)
// @Param        top_n  query     int     false  "How many companies"        example(5)
// @Success      200    {object}  dto.TopVolumeResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse      "No trading data in range"
// @Failure      502    {object}  dto.ErrorResponse      "Upstream failure"
// @Router       /api/v1/volume/top [get]
func (h *Handler) TopVolume(c *gin.Context) {
	window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date range", err))
		return
	}

	topN := 5
	if s := c.Query("top_n"); s != "" {
		topN, err = strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid top_n", err))
			return
		}
	}

	res, err := h.volume.TopByVolume(c.Request.Context(), window, topN)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TopVolumeResponse{
		EffectiveStart: res.EffectiveStart.Format(models.DateLayout),
		End:            res.End.Format(models.DateLayout),
		TopN:           topN,
		Companies:      res.Companies,
		Table:          res.Table,
	})
}

// DailyComparison handles GET /api/v1/daily requests for one or more tickers.
//
// DailyComparison godoc
// @Summary      Daily transactions for one or more tickers
// @Description  Fetches the provider daily document for every ticker over the same range
// @Tags         daily
// @Produce      json
// @Param        tickers  query     string  true   "Comma-separated tickers" example(BBRI,TLKM)
// @Param        start    query     string  false  "Start date in YYYY-MM-DD"
// @Param        end      query     string  false  "End date in YYYY-MM-DD"
// @Success      200      {object}  dto.DailyComparisonResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse            "Bad Request"
// @Failure      502      {object}  dto.ErrorResponse            "Upstream failure"
// @Router       /api/v1/daily [get]
func (h *Handler) DailyComparison(c *gin.Context) {
	window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date range", err))
		return
	}

	raw := strings.Split(c.Query("tickers"), ",")
	tickers := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("tickers is required", nil))
		return
	}

	docs, err := h.volume.CompareDaily(c.Request.Context(), tickers, window)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DailyComparisonResponse{
		Start:   window.StartString(),
		End:     window.EndString(),
		Tickers: docs,
	})
}

// CompanyOverview handles GET /api/v1/company/:ticker/overview.
//
// CompanyOverview godoc
// @Summary      Company overview
// @Tags         company
// @Produce      json
// @Param        ticker  path  string  true  "Stock ticker" example(BBRI)
// @Success      200  {object}  object             "Provider overview document"
// @Failure      502  {object}  dto.ErrorResponse  "Upstream failure"
// @Router       /api/v1/company/{ticker}/overview [get]
func (h *Handler) CompanyOverview(c *gin.Context) {
	h.passthrough(c, h.api.CompanyOverview)
}

// ListingPerformance handles GET /api/v1/company/:ticker/ipo.
//
// ListingPerformance godoc
// @Summary      Performance since IPO listing
// @Tags         company
// @Produce      json
// @Param        ticker  path  string  true  "Stock ticker" example(GOTO)
// @Success      200  {object}  object             "Provider performance document"
// @Failure      502  {object}  dto.ErrorResponse  "Upstream failure"
// @Router       /api/v1/company/{ticker}/ipo [get]
func (h *Handler) ListingPerformance(c *gin.Context) {
	h.passthrough(c, h.api.ListingPerformance)
}

// CompanySegments handles GET /api/v1/company/:ticker/segments.
//
// CompanySegments godoc
// @Summary      Revenue and cost segments
// @Tags         company
// @Produce      json
// @Param        ticker  path  string  true  "Stock ticker" example(TLKM)
// @Success      200  {object}  object             "Provider segments document"
// @Failure      502  {object}  dto.ErrorResponse  "Upstream failure"
// @Router       /api/v1/company/{ticker}/segments [get]
func (h *Handler) CompanySegments(c *gin.Context) {
	h.passthrough(c, h.api.CompanySegments)
}
