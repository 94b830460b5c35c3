// Package http provides the inbound HTTP adapter: thin echo handlers that
// translate requests into commands and queries. All business rules live
// behind the handlers; this layer only parses, dispatches and maps errors
// to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dinner/internal/core/application/usecases/commands"
	"dinner/internal/core/application/usecases/queries"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/usergate"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	modifyOrderHandler          commands.ModifyOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	reviewOrderHandler          commands.ReviewOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	scheduleDeliveryHandler     commands.ScheduleDeliveryCommandHandler
	updateScheduleStatusHandler commands.UpdateScheduleStatusCommandHandler
	createChangeRequestHandler  commands.CreateChangeRequestCommandHandler
	approveChangeRequestHandler commands.ApproveChangeRequestCommandHandler
	rejectChangeRequestHandler  commands.RejectChangeRequestCommandHandler
	restockInventoryHandler     commands.RestockInventoryCommandHandler

	// Query handlers
	getUserOrdersHandler        queries.GetUserOrdersQueryHandler
	getChangeRequestsHandler    queries.GetChangeRequestsQueryHandler
	getScheduleBoardHandler     queries.GetScheduleBoardQueryHandler
	getInventorySnapshotHandler queries.GetInventorySnapshotQueryHandler
}

// Handlers bundles every use case the server exposes.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	ModifyOrder          commands.ModifyOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	ReviewOrder          commands.ReviewOrderCommandHandler
	UpdateOrderStatus    commands.UpdateOrderStatusCommandHandler
	ScheduleDelivery     commands.ScheduleDeliveryCommandHandler
	UpdateScheduleStatus commands.UpdateScheduleStatusCommandHandler
	CreateChangeRequest  commands.CreateChangeRequestCommandHandler
	ApproveChangeRequest commands.ApproveChangeRequestCommandHandler
	RejectChangeRequest  commands.RejectChangeRequestCommandHandler
	RestockInventory     commands.RestockInventoryCommandHandler

	GetUserOrders        queries.GetUserOrdersQueryHandler
	GetChangeRequests    queries.GetChangeRequestsQueryHandler
	GetScheduleBoard     queries.GetScheduleBoardQueryHandler
	GetInventorySnapshot queries.GetInventorySnapshotQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{
		createOrderHandler:          handlers.CreateOrder,
		modifyOrderHandler:          handlers.ModifyOrder,
		cancelOrderHandler:          handlers.CancelOrder,
		reviewOrderHandler:          handlers.ReviewOrder,
		updateOrderStatusHandler:    handlers.UpdateOrderStatus,
		scheduleDeliveryHandler:     handlers.ScheduleDelivery,
		updateScheduleStatusHandler: handlers.UpdateScheduleStatus,
		createChangeRequestHandler:  handlers.CreateChangeRequest,
		approveChangeRequestHandler: handlers.ApproveChangeRequest,
		rejectChangeRequestHandler:  handlers.RejectChangeRequest,
		restockInventoryHandler:     handlers.RestockInventory,
		getUserOrdersHandler:        handlers.GetUserOrders,
		getChangeRequestsHandler:    handlers.GetChangeRequests,
		getScheduleBoardHandler:     handlers.GetScheduleBoard,
		getInventorySnapshotHandler: handlers.GetInventorySnapshot,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:id", s.ModifyOrder)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.POST("/orders/:id/review", s.ReviewOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/schedule", s.ScheduleDelivery)
	api.POST("/schedules/:id/status", s.UpdateScheduleStatus)
	api.POST("/change-requests", s.CreateChangeRequest)
	api.POST("/change-requests/:id/approve", s.ApproveChangeRequest)
	api.POST("/change-requests/:id/reject", s.RejectChangeRequest)
	api.POST("/inventory/restock", s.RestockInventory)

	api.GET("/users/:id/orders", s.GetUserOrders)
	api.GET("/change-requests", s.GetChangeRequests)
	api.GET("/schedules", s.GetScheduleBoard)
	api.GET("/inventory", s.GetInventorySnapshot)

	e.GET("/health", s.Health)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type itemLineRequest struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

func toItemLines(lines []itemLineRequest) []commands.ItemLine {
	items := make([]commands.ItemLine, 0, len(lines))
	for _, line := range lines {
		items = append(items, commands.ItemLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		})
	}
	return items
}

// writeError maps domain errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrBusinessRuleViolated),
		errors.Is(err, errs.ErrStorageContention):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrPaymentFailed):
		status = http.StatusPaymentRequired
	case errors.Is(err, usergate.ErrTooFrequent):
		status = http.StatusTooManyRequests
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func pathID(ctx echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &id).BindError(); err != nil {
		return 0, errs.NewValueIsInvalidError("id")
	}
	return id, nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		UserID          int64             `json:"userId"`
		DinnerTypeID    int64             `json:"dinnerTypeId"`
		ServingStyle    string            `json:"servingStyle"`
		DeliveryTime    time.Time         `json:"deliveryTime"`
		DeliveryAddress string            `json:"deliveryAddress"`
		PaymentMethod   string            `json:"paymentMethod"`
		Items           []itemLineRequest `json:"items"`
	}
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.UserID,
		req.DinnerTypeID,
		req.ServingStyle,
		req.DeliveryTime,
		req.DeliveryAddress,
		req.PaymentMethod,
		toItemLines(req.Items),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]int64{"orderId": orderID})
}

// ModifyOrder handles PUT /api/v1/orders/:id. The order is cancelled and
// rewritten, so the response carries the replacement order's id.
func (s *Server) ModifyOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req struct {
		DinnerTypeID    int64             `json:"dinnerTypeId"`
		ServingStyle    string            `json:"servingStyle"`
		DeliveryTime    time.Time         `json:"deliveryTime"`
		DeliveryAddress string            `json:"deliveryAddress"`
		Items           []itemLineRequest `json:"items"`
	}
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewModifyOrderCommand(
		orderID,
		req.DinnerTypeID,
		req.ServingStyle,
		req.DeliveryTime,
		req.DeliveryAddress,
		toItemLines(req.Items),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	newOrderID, err := s.modifyOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"orderId": newOrderID})
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewOrder handles POST /api/v1/orders/:id/review.
func (s *Server) ReviewOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewReviewOrderCommand(orderID, req.Approved)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reviewOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req struct {
		Status     string `json:"status"`
		EmployeeID int64  `json:"employeeId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status, req.EmployeeID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ScheduleDelivery handles POST /api/v1/orders/:id/schedule.
func (s *Server) ScheduleDelivery(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewScheduleDeliveryCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	courierID, err := s.scheduleDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"employeeId": courierID})
}

// UpdateScheduleStatus handles POST /api/v1/schedules/:id/status.
func (s *Server) UpdateScheduleStatus(ctx echo.Context) error {
	scheduleID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req struct {
		Status      string `json:"status"`
		RequesterID int64  `json:"requesterId"`
		IsAdmin     bool   `json:"isAdmin"`
	}
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpdateScheduleStatusCommand(scheduleID, req.Status, req.RequesterID, req.IsAdmin)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateScheduleStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateChangeRequest handles POST /api/v1/change-requests.
func (s *Server) CreateChangeRequest(ctx echo.Context) error {
	var req struct {
		OrderID         int64             `json:"orderId"`
		UserID          int64             `json:"userId"`
		DinnerTypeID    int64             `json:"dinnerTypeId"`
		ServingStyle    string            `json:"servingStyle"`
		DeliveryTime    time.Time         `json:"deliveryTime"`
		DeliveryAddress string            `json:"deliveryAddress"`
		Items           []itemLineRequest `json:"items"`
	}
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCreateChangeRequestCommand(
		req.OrderID,
		req.UserID,
		req.DinnerTypeID,
		req.ServingStyle,
		req.DeliveryTime,
		req.DeliveryAddress,
		toItemLines(req.Items),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	requestID, err := s.createChangeRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]int64{"requestId": requestID})
}

// ApproveChangeRequest handles POST /api/v1/change-requests/:id/approve.
func (s *Server) ApproveChangeRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveChangeRequestCommand(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.approveChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectChangeRequest handles POST /api/v1/change-requests/:id/reject.
func (s *Server) RejectChangeRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRejectChangeRequestCommand(requestID, req.Comment)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rejectChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RestockInventory handles POST /api/v1/inventory/restock.
func (s *Server) RestockInventory(ctx echo.Context) error {
	var req struct {
		MenuItemID int64  `json:"menuItemId"`
		Capacity   int    `json:"capacity"`
		Notes      string `json:"notes"`
	}
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRestockInventoryCommand(req.MenuItemID, req.Capacity, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.restockInventoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUserOrders handles GET /api/v1/users/:id/orders.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetChangeRequests handles GET /api/v1/change-requests.
func (s *Server) GetChangeRequests(ctx echo.Context) error {
	var userID int64
	if err := echo.QueryParamsBinder(ctx).Int64("userId", &userID).BindError(); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("userId"))
	}
	status := ctx.QueryParam("status")

	query, err := queries.NewGetChangeRequestsQuery(userID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	requests, err := s.getChangeRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, requests)
}

// GetScheduleBoard handles GET /api/v1/schedules. The day parameter takes an
// RFC 3339 timestamp; missing means today.
func (s *Server) GetScheduleBoard(ctx echo.Context) error {
	day := time.Now()
	if raw := ctx.QueryParam("day"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("day", err))
		}
		day = parsed
	}

	query, err := queries.NewGetScheduleBoardQuery(day)
	if err != nil {
		return writeError(ctx, err)
	}

	runs, err := s.getScheduleBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, runs)
}

// GetInventorySnapshot handles GET /api/v1/inventory.
func (s *Server) GetInventorySnapshot(ctx echo.Context) error {
	at := time.Now()
	if raw := ctx.QueryParam("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("at", err))
		}
		at = parsed
	}

	query, err := queries.NewGetInventorySnapshotQuery(at)
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := s.getInventorySnapshotHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, items)
}
