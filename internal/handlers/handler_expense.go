package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/SscSPs/life_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses and their payment ledger.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/summary", h.summarizeExpenses)
		expenses.POST("/roll-recurring", h.rollRecurring)
		expenses.POST("/flag-overdue", h.flagOverdue)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
		expenses.POST("/:expenseID/payments", h.applyPayment)
		expenses.POST("/:expenseID/mark-paid", h.markPaid)
		expenses.POST("/:expenseID/mark-unpaid", h.markUnpaid)
		expenses.POST("/:expenseID/mark-overdue", h.markOverdue)
		expenses.POST("/:expenseID/advance", h.advanceRecurrence)
	}
}

// createExpense godoc
// @Summary Create an expense
// @Description Records a new expense. Recurring expenses get their next due date computed.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Returns one page of the caller's expenses, newest first.
// @Tags expenses
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, page)
}

// summarizeExpenses godoc
// @Summary Summarize expenses per currency
// @Description Totals, paid and remaining amounts for each currency. Dates are inclusive.
// @Tags expenses
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param currency query string false "Only this currency"
// @Success 200 {object} dto.ExpenseSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/summary [get]
func (h *expenseHandler) summarizeExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	totals, err := h.expenseService.SummarizeExpenses(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to summarize expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseSummaryResponse(totals))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), userID, c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Only the supplied fields change. An empty budgetID unlinks the budget.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, c.Param("expenseID"), req)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param expenseID path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, c.Param("expenseID")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyPayment godoc
// @Summary Apply a payment
// @Description Adds a (partial) payment. Payments above the remaining balance are rejected.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param payment body dto.ApplyPaymentRequest true "Payment amount"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/payments [post]
func (h *expenseHandler) applyPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	expense, err := h.expenseService.ApplyPayment(c.Request.Context(), userID, c.Param("expenseID"), req.Amount)
	if err != nil {
		respondError(c, err, "Failed to apply payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// runExpenseAction executes one of the bodiless per-expense operations.
func runExpenseAction(c *gin.Context, fallback string, action func(ctx context.Context, userID, expenseID string) (*domain.Expense, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expense, err := action(c.Request.Context(), userID, c.Param("expenseID"))
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// markPaid godoc
// @Summary Mark an expense fully paid
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/mark-paid [post]
func (h *expenseHandler) markPaid(c *gin.Context) {
	runExpenseAction(c, "Failed to mark expense paid", h.expenseService.MarkPaid)
}

// markUnpaid godoc
// @Summary Reset an expense's payments
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/mark-unpaid [post]
func (h *expenseHandler) markUnpaid(c *gin.Context) {
	runExpenseAction(c, "Failed to mark expense unpaid", h.expenseService.MarkUnpaid)
}

// markOverdue godoc
// @Summary Flag an expense overdue
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/mark-overdue [post]
func (h *expenseHandler) markOverdue(c *gin.Context) {
	runExpenseAction(c, "Failed to mark expense overdue", h.expenseService.MarkOverdue)
}

// advanceRecurrence godoc
// @Summary Advance a recurring expense
// @Description Moves the next due date forward by one period.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Expense is not recurring"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/advance [post]
func (h *expenseHandler) advanceRecurrence(c *gin.Context) {
	runExpenseAction(c, "Failed to advance expense", h.expenseService.AdvanceRecurrence)
}

// rollRecurring godoc
// @Summary Fill in missing next due dates
// @Tags expenses
// @Produce json
// @Success 200 {object} dto.RollForwardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/roll-recurring [post]
func (h *expenseHandler) rollRecurring(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	updated, err := h.expenseService.RollRecurring(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to roll recurring expenses")
		return
	}
	c.JSON(http.StatusOK, dto.RollForwardResponse{Updated: updated})
}

// flagOverdue godoc
// @Summary Flag every unpaid expense past its due date
// @Tags expenses
// @Produce json
// @Success 200 {object} dto.FlagOverdueResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/flag-overdue [post]
func (h *expenseHandler) flagOverdue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	flagged, err := h.expenseService.FlagOverdue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to flag overdue expenses")
		return
	}
	c.JSON(http.StatusOK, dto.FlagOverdueResponse{Flagged: flagged})
}
