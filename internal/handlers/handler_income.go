package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := &incomeHandler{incomeService: incomeService}

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/summary", h.summarizeIncomes)
		incomes.POST("/roll-recurring", h.rollRecurring)
		incomes.GET("/:incomeID", h.getIncome)
		incomes.PUT("/:incomeID", h.updateIncome)
		incomes.DELETE("/:incomeID", h.deleteIncome)
		incomes.POST("/:incomeID/advance", h.advanceRecurrence)
	}
}

// createIncome godoc
// @Summary Record an income
// @Tags incomes
// @Accept json
// @Produce json
// @Param income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create income")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List incomes
// @Tags incomes
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	page, err := h.incomeService.ListIncomes(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, page)
}

// summarizeIncomes godoc
// @Summary Summarize incomes per currency
// @Tags incomes
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param currency query string false "Only this currency"
// @Success 200 {object} dto.IncomeSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/summary [get]
func (h *incomeHandler) summarizeIncomes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	totals, err := h.incomeService.SummarizeIncomes(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to summarize incomes")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeSummaryResponse(totals))
}

// getIncome godoc
// @Summary Get an income
// @Tags incomes
// @Produce json
// @Param incomeID path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{incomeID} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	income, err := h.incomeService.GetIncome(c.Request.Context(), userID, c.Param("incomeID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update an income
// @Tags incomes
// @Accept json
// @Produce json
// @Param incomeID path string true "Income ID"
// @Param income body dto.UpdateIncomeRequest true "Fields to update"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{incomeID} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), userID, c.Param("incomeID"), req)
	if err != nil {
		respondError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income
// @Tags incomes
// @Param incomeID path string true "Income ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{incomeID} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.incomeService.DeleteIncome(c.Request.Context(), userID, c.Param("incomeID")); err != nil {
		respondError(c, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

// advanceRecurrence godoc
// @Summary Advance a recurring income
// @Tags incomes
// @Produce json
// @Param incomeID path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse "Income is not recurring"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{incomeID}/advance [post]
func (h *incomeHandler) advanceRecurrence(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	income, err := h.incomeService.AdvanceRecurrence(c.Request.Context(), userID, c.Param("incomeID"))
	if err != nil {
		respondError(c, err, "Failed to advance income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// rollRecurring godoc
// @Summary Fill in missing next due dates
// @Tags incomes
// @Produce json
// @Success 200 {object} dto.RollForwardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/roll-recurring [post]
func (h *incomeHandler) rollRecurring(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	updated, err := h.incomeService.RollRecurring(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to roll recurring incomes")
		return
	}
	c.JSON(http.StatusOK, dto.RollForwardResponse{Updated: updated})
}
