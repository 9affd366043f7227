package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type overviewHandler struct {
	overviewService portssvc.OverviewSvcFacade
}

func registerOverviewRoutes(rg *gin.RouterGroup, overviewService portssvc.OverviewSvcFacade) {
	h := &overviewHandler{overviewService: overviewService}
	rg.GET("/overview/financial-health", h.financialHealth)
}

// financialHealth godoc
// @Summary Financial health overview
// @Description Aggregates the last months of records per currency and scores them.
// @Description Categories that could not be loaded are listed under degraded.
// @Tags overview
// @Produce json
// @Param months query int false "Window in months (1-60); defaults to the configured window"
// @Success 200 {object} dto.FinancialOverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /overview/financial-health [get]
func (h *overviewHandler) financialHealth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.OverviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	overview, err := h.overviewService.FinancialOverview(c.Request.Context(), userID, params.Months)
	if err != nil {
		respondError(c, err, "Failed to build financial overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialOverviewResponse(overview))
}
