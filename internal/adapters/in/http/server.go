package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/audit"
	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	upsertOrderHandler         commands.UpsertOrderCommandHandler
	automateOrderStatusHandler commands.AutomateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getOrderAuditTrailHandler queries.GetOrderAuditTrailQueryHandler

	binder echo.DefaultBinder
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	upsertOrderHandler commands.UpsertOrderCommandHandler,
	automateOrderStatusHandler commands.AutomateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderAuditTrailHandler queries.GetOrderAuditTrailQueryHandler,
) *Server {
	return &Server{
		upsertOrderHandler:         upsertOrderHandler,
		automateOrderStatusHandler: automateOrderStatusHandler,
		getOrderHandler:            getOrderHandler,
		getOrderAuditTrailHandler:  getOrderAuditTrailHandler,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetOrder handles GET /api/v1/orders/{orderId} - retrieves an order document.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, servers.Order{
		Id:                view.ID,
		Status:            optional(view.Status.String()),
		StatusAutomatedBy: optional(view.StatusAutomatedBy),
		Fields:            view.Fields,
	})
}

// UpsertOrder handles PUT /api/v1/orders/{orderId} - creates or replaces an order document.
func (s *Server) UpsertOrder(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.UpsertOrderJSONRequestBody
	// Path params would otherwise be bound into the document map.
	if err := s.binder.BindBody(ctx, &body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpsertOrderCommand(orderID, body)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.upsertOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to store order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TriggerOrderChange handles POST /api/v1/orders/{orderId}/changes - runs the
// status automation for an explicit before/after pair.
func (s *Server) TriggerOrderChange(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.TriggerOrderChangeJSONRequestBody
	if err := s.binder.BindBody(ctx, &body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	var before map[string]any
	if body.Before != nil {
		before = *body.Before
	}

	cmd, err := commands.NewAutomateOrderStatusCommand(orderID, before, body.After)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order change: "+err.Error())
	}

	result, err := s.automateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to record automation error")
	}

	response := servers.AutomationResult{
		Outcome:               servers.AutomationResultOutcome(result.Outcome),
		PreviousStatus:        optional(result.PreviousStatus.String()),
		NewStatus:             optional(result.NewStatus.String()),
		Rule:                  optional(result.Rule),
		NotificationDelivered: result.NotificationDelivered,
		NotificationToken:     optional(result.NotificationToken),
	}
	if result.Err != nil {
		response.Error = optional(result.Err.Error())
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderAuditTrail handles GET /api/v1/orders/{orderId}/audit - lists audit entries oldest first.
func (s *Server) GetOrderAuditTrail(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderAuditTrailQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	entries, err := s.getOrderAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve audit trail")
	}

	response := make([]servers.AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = toAuditEntry(e)
	}

	return ctx.JSON(http.StatusOK, response)
}

func toAuditEntry(e audit.Entry) servers.AuditEntry {
	return servers.AuditEntry{
		Id:               e.ID(),
		OrderId:          e.OrderID(),
		Action:           servers.AuditEntryAction(e.Action()),
		Timestamp:        e.Timestamp(),
		PrevStatus:       optional(e.PrevStatus().String()),
		NewStatus:        optional(e.NewStatus().String()),
		AutomatedBy:      optional(e.AutomatedBy()),
		NotificationType: optional(e.NotificationType()),
		Topic:            optional(e.Topic()),
		Result:           optional(e.Result()),
		Error:            optional(e.ErrorDescription()),
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    int32(code),
		Message: message,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
