// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/application/usecase/obligation"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/entrypoint/dto"
	"github.com/pairfin/backend/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// ObligationController handles obligation endpoints.
type ObligationController struct {
	createUseCase     *obligation.CreateObligationUseCase
	getUseCase        *obligation.GetObligationUseCase
	listUseCase       *obligation.ListObligationsUseCase
	updateUseCase     *obligation.UpdateObligationUseCase
	deactivateUseCase *obligation.DeactivateObligationUseCase
	rematchUseCase    *matching.RematchObligationUseCase
	suggestUseCase    *matching.SuggestMatchesUseCase
}

// NewObligationController creates a new obligation controller instance.
func NewObligationController(
	createUseCase *obligation.CreateObligationUseCase,
	getUseCase *obligation.GetObligationUseCase,
	listUseCase *obligation.ListObligationsUseCase,
	updateUseCase *obligation.UpdateObligationUseCase,
	deactivateUseCase *obligation.DeactivateObligationUseCase,
	rematchUseCase *matching.RematchObligationUseCase,
	suggestUseCase *matching.SuggestMatchesUseCase,
) *ObligationController {
	return &ObligationController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deactivateUseCase: deactivateUseCase,
		rematchUseCase:    rematchUseCase,
		suggestUseCase:    suggestUseCase,
	}
}

// Create handles POST /obligations requests.
func (c *ObligationController) Create(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateObligationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	nextDue, err := time.Parse(dateLayout, req.NextDue)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid next_due date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidNextDue),
		})
		return
	}

	expectedAmount, err := parseAmount(req.ExpectedAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expected_amount",
		})
		return
	}

	input := obligation.CreateObligationInput{
		PartnershipID:   partnershipID,
		Name:            req.Name,
		MerchantPattern: req.MerchantPattern,
		ExpectedAmount:  expectedAmount,
		Recurrence:      req.Recurrence,
		NextDue:         nextDue,
		Kind:            req.Kind,
		IncomeType:      req.IncomeType,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateObligationResponse{
		Obligation:          dto.ToObligationResponse(output.Obligation),
		MatchedTransactions: output.Matched,
		MatchingFailure:     output.MatchingFailure,
	})
}

// Get handles GET /obligations/:id requests.
func (c *ObligationController) Get(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	obligationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid obligation ID format",
		})
		return
	}

	ob, err := c.getUseCase.Execute(ctx.Request.Context(), obligation.GetObligationInput{
		ObligationID:  obligationID,
		PartnershipID: partnershipID,
	})
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// List handles GET /obligations requests.
func (c *ObligationController) List(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	activeOnly := ctx.Query("active") == "true"

	output, err := c.listUseCase.Execute(ctx.Request.Context(), obligation.ListObligationsInput{
		PartnershipID: partnershipID,
		ActiveOnly:    activeOnly,
	})
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	obligations := make([]dto.ObligationResponse, len(output.Obligations))
	for i, ob := range output.Obligations {
		obligations[i] = dto.ToObligationResponse(ob)
	}

	ctx.JSON(http.StatusOK, dto.ListObligationsResponse{Obligations: obligations})
}

// Update handles PUT /obligations/:id requests.
func (c *ObligationController) Update(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	obligationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid obligation ID format",
		})
		return
	}

	var req dto.UpdateObligationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := obligation.UpdateObligationInput{
		ObligationID:    obligationID,
		PartnershipID:   partnershipID,
		Name:            req.Name,
		MerchantPattern: req.MerchantPattern,
		Recurrence:      req.Recurrence,
		Active:          req.Active,
	}

	if req.NextDue != nil {
		nextDue, err := time.Parse(dateLayout, *req.NextDue)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid next_due date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidNextDue),
			})
			return
		}
		input.NextDue = &nextDue
	}

	if req.ExpectedAmount != nil {
		expectedAmount, err := parseAmount(req.ExpectedAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid expected_amount",
			})
			return
		}
		input.ExpectedAmount = expectedAmount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateObligationResponse{
		Obligation:          dto.ToObligationResponse(output.Obligation),
		MatchedTransactions: output.Rematched,
		MatchingFailure:     output.MatchingFailure,
	})
}

// Deactivate handles DELETE /obligations/:id requests.
func (c *ObligationController) Deactivate(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	obligationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid obligation ID format",
		})
		return
	}

	err = c.deactivateUseCase.Execute(ctx.Request.Context(), obligation.DeactivateObligationInput{
		ObligationID:  obligationID,
		PartnershipID: partnershipID,
	})
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Obligation deactivated"})
}

// Rematch handles POST /obligations/:id/rematch requests. The sweep reports
// soft failures in the response body with a 200 status: the request itself
// succeeded even when nothing could be matched.
func (c *ObligationController) Rematch(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	obligationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid obligation ID format",
		})
		return
	}

	// Ownership check; the sweep itself does not know the caller.
	if _, err := c.getUseCase.Execute(ctx.Request.Context(), obligation.GetObligationInput{
		ObligationID:  obligationID,
		PartnershipID: partnershipID,
	}); err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	windowMonths := 0
	if windowStr := ctx.Query("window_months"); windowStr != "" {
		if w, err := strconv.Atoi(windowStr); err == nil && w > 0 {
			windowMonths = w
		}
	}

	output := c.rematchUseCase.Execute(ctx.Request.Context(), matching.RematchObligationInput{
		ObligationID: obligationID,
		WindowMonths: windowMonths,
	})

	ctx.JSON(http.StatusOK, dto.RematchResponse{
		MatchedTransactions: output.Matched,
		MatchingFailure:     output.FailureReason,
	})
}

// Suggest handles GET /obligations/:id/suggestions requests.
func (c *ObligationController) Suggest(ctx *gin.Context) {
	partnershipID, ok := middleware.GetPartnershipIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	obligationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid obligation ID format",
		})
		return
	}

	if _, err := c.getUseCase.Execute(ctx.Request.Context(), obligation.GetObligationInput{
		ObligationID:  obligationID,
		PartnershipID: partnershipID,
	}); err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	lookbackMonths := 0
	if lookbackStr := ctx.Query("lookback_months"); lookbackStr != "" {
		if l, err := strconv.Atoi(lookbackStr); err == nil && l > 0 {
			lookbackMonths = l
		}
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), matching.SuggestMatchesInput{
		ObligationID:   obligationID,
		LookbackMonths: lookbackMonths,
	})
	if err != nil {
		c.handleObligationError(ctx, err)
		return
	}

	suggestions := make([]dto.MatchSuggestionResponse, len(output.Suggestions))
	for i, s := range output.Suggestions {
		suggestions[i] = dto.ToMatchSuggestionResponse(s)
	}

	ctx.JSON(http.StatusOK, dto.SuggestMatchesResponse{Suggestions: suggestions})
}

// handleObligationError maps obligation errors to HTTP responses.
func (c *ObligationController) handleObligationError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrObligationNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Obligation not found",
			Code:  string(domainerror.ErrCodeObligationNotFound),
		})
		return
	}

	var obErr *domainerror.ObligationError
	if errors.As(err, &obErr) {
		ctx.JSON(statusCodeForObligationError(obErr.Code), dto.ErrorResponse{
			Error: obErr.Message,
			Code:  string(obErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForObligationError maps error codes to HTTP status codes.
func statusCodeForObligationError(code domainerror.ObligationErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRecurrence,
		domainerror.ErrCodeInvalidNextDue,
		domainerror.ErrCodeInvalidObligationKind,
		domainerror.ErrCodeObligationNameRequired:
		return http.StatusBadRequest
	case domainerror.ErrCodeNotAuthorizedObligation:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseAmount parses an optional decimal string.
func parseAmount(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}
