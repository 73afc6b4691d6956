package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.Order()
	if err != nil {
		writeError(c, domainErrors.Invalid("deliveryDate", "formato data non valido (AAAA-MM-GG)"))
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewOrderResponse(*order)))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderList(orders)))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderResponse(*order)))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentActor(c), id, model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewOrderResponse(*order)))
}

// QRCode handles GET /api/orders/:id/qrcode.
func (h *OrderHandler) QRCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	png, err := h.facade.OrderQRCode(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// DonationHandler manages donation endpoints.
type DonationHandler struct {
	facade DonationFacade
}

func NewDonationHandler(facade DonationFacade) *DonationHandler {
	return &DonationHandler{facade: facade}
}

// Create handles POST /api/donations.
func (h *DonationHandler) Create(c *gin.Context) {
	var req dto.CreateDonationRequest
	if !bindJSON(c, &req) {
		return
	}
	donation, err := h.facade.Donate(c.Request.Context(), CurrentActor(c), req.OrderID, req.OnlusID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewDonationResponse(*donation)))
}

// List handles GET /api/donations.
func (h *DonationHandler) List(c *gin.Context) {
	donations, err := h.facade.Donations(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewDonationList(donations)))
}

// UpdateStatus handles PATCH /api/donations/:id/status.
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	donation, err := h.facade.UpdateDonationStatus(c.Request.Context(), CurrentActor(c), id, model.DonationStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewDonationResponse(*donation)))
}
