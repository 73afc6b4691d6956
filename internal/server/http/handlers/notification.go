package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
)

// ReviewHandler serves restaurant reviews.
type ReviewHandler struct {
	facade ReviewFacade
}

func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// List handles GET /api/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}
	reviews, err := h.facade.Reviews(c.Request.Context(), model.ReviewFilter{RestaurantID: q.RestaurantID, PlanID: q.PlanID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewReviewList(reviews)))
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.facade.CreateReview(c.Request.Context(), CurrentActor(c), req.Review())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewReviewResponse(*review)))
}

// NotificationHandler serves the notification inbox and stream.
type NotificationHandler struct {
	facade NotificationFacade
}

func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.facade.Notifications(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewNotificationList(items)))
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.MarkNotificationRead(c.Request.Context(), CurrentActor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Notifica letta"})
}

// Stream handles GET /api/notifications/stream. The connection is hijacked by
// the websocket upgrade, so errors after that point are only recorded.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if err := h.facade.StreamNotifications(c.Writer, c.Request, CurrentActor(c)); err != nil {
		_ = c.Error(err)
		if !c.Writer.Written() {
			writeError(c, err)
		}
	}
}

// BotHandler serves the support bot.
type BotHandler struct {
	facade BotFacade
}

func NewBotHandler(facade BotFacade) *BotHandler {
	return &BotHandler{facade: facade}
}

// Ask handles POST /api/bot.
func (h *BotHandler) Ask(c *gin.Context) {
	var req dto.BotRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.facade.AskBot(c.Request.Context(), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewBotReplyResponse(reply)))
}

// Stats handles GET /api/bot/stats.
func (h *BotHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(dto.NewBotStatsResponse(h.facade.BotStats())))
}

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	facade HealthFacade
}

func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Checks: map[string]string{}}
	code := http.StatusOK
	for name, err := range h.facade.Health(c.Request.Context()) {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(code, resp)
}
