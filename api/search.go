package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/service/search"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service  search.SearchUseCase
	priceMax int64
}

type searchRequest struct {
	domain.SearchRequest
	Filters *domain.SearchFilters `json:"filters,omitempty"`
}

type searchResponse struct {
	Segments    [][]domain.SegmentFlight `json:"segments"`
	Airlines    []string                 `json:"airlines"`
	DateWindows [][]string               `json:"dateWindows"`
	PriceMax    int64                    `json:"priceMax"`
}

// NewSearchHandler takes the price ceiling the filter UI starts from.
func NewSearchHandler(service search.SearchUseCase, priceMax int64) *SearchHandler {
	return &SearchHandler{service: service, priceMax: priceMax}
}

func (h *SearchHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.POST("/search", auth.RequireUser(), h.search)
}

func (h *SearchHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	results, err := h.service.Search(c.Request.Context(), req.SearchRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := searchResponse{
		Segments: results,
		Airlines: search.AirlineOptions(results),
		PriceMax: h.priceMax,
	}
	if req.Filters != nil {
		resp.Segments = search.ApplyFilters(results, *req.Filters)
	}
	for _, r := range req.Routes {
		resp.DateWindows = append(resp.DateWindows, search.DateWindow(r.Date, req.FlexibleDates))
	}
	c.JSON(http.StatusOK, resp)
}
