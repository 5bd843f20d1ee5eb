// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/usecase/notification"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/entrypoint/dto"
	"github.com/pairfin/backend/internal/integration/entrypoint/middleware"
)

// NotificationController handles notification endpoints.
type NotificationController struct {
	listUseCase   *notification.ListNotificationsUseCase
	actionUseCase *notification.ActionNotificationUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	actionUseCase *notification.ActionNotificationUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:   listUseCase,
		actionUseCase: actionUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	limit := 20
	offset := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), notification.ListNotificationsInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	notifications := make([]dto.NotificationResponse, len(output.Notifications))
	for i, n := range output.Notifications {
		notifications[i] = dto.ToNotificationResponse(n)
	}

	ctx.JSON(http.StatusOK, dto.ListNotificationsResponse{Notifications: notifications})
}

// Action handles POST /notifications/:id/action requests. Actioning a
// price-change notification re-arms detection for its obligation.
func (c *NotificationController) Action(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid notification ID format",
		})
		return
	}

	err = c.actionUseCase.Execute(ctx.Request.Context(), notification.ActionNotificationInput{
		NotificationID: notificationID,
		UserID:         userID,
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification actioned"})
}

// handleNotificationError maps notification errors to HTTP responses.
func (c *NotificationController) handleNotificationError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrNotificationNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Notification not found",
			Code:  string(domainerror.ErrCodeNotificationNotFound),
		})
		return
	}

	var notifErr *domainerror.NotificationError
	if errors.As(err, &notifErr) {
		status := http.StatusInternalServerError
		if notifErr.Code == domainerror.ErrCodeNotAuthorizedNotification {
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: notifErr.Message,
			Code:  string(notifErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
