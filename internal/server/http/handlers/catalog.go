package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thermopolio/thermopolio/internal/geo"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
)

func nearbyQuery(c *gin.Context) (geo.Point, float64, bool) {
	var q dto.NearbyQuery
	if !bindQuery(c, &q) {
		return geo.Point{}, 0, false
	}
	radius := q.Radius
	if radius == 0 {
		radius = geo.DefaultRadiusKm
	}
	return geo.Point{Lat: *q.Lat, Lng: *q.Lng}, radius, true
}

// RestaurantHandler serves restaurants, charities and favourites.
type RestaurantHandler struct {
	facade CatalogFacade
}

func NewRestaurantHandler(facade CatalogFacade) *RestaurantHandler {
	return &RestaurantHandler{facade: facade}
}

// List handles GET /api/restaurants.
func (h *RestaurantHandler) List(c *gin.Context) {
	users, err := h.facade.Restaurants(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewUserList(users)))
}

// Nearby handles GET /api/restaurants/nearby.
func (h *RestaurantHandler) Nearby(c *gin.Context) {
	origin, radius, ok := nearbyQuery(c)
	if !ok {
		return
	}
	items, err := h.facade.NearbyRestaurants(c.Request.Context(), origin, radius)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewNearbyUserList(items)))
}

// Get handles GET /api/restaurants/:id.
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.facade.Restaurant(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewUserResponse(*user)))
}

// Charities handles GET /api/onlus.
func (h *RestaurantHandler) Charities(c *gin.Context) {
	users, err := h.facade.Charities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewUserList(users)))
}

// AddFavorite handles POST /api/favorites/:restaurantId.
func (h *RestaurantHandler) AddFavorite(c *gin.Context) {
	id, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	if err := h.facade.AddFavorite(c.Request.Context(), CurrentActor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Ristorante aggiunto ai preferiti"})
}

// RemoveFavorite handles DELETE /api/favorites/:restaurantId.
func (h *RestaurantHandler) RemoveFavorite(c *gin.Context) {
	id, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	if err := h.facade.RemoveFavorite(c.Request.Context(), CurrentActor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Ristorante rimosso dai preferiti"})
}

// PlanHandler serves subscription plans.
type PlanHandler struct {
	facade CatalogFacade
}

func NewPlanHandler(facade CatalogFacade) *PlanHandler {
	return &PlanHandler{facade: facade}
}

// List handles GET /api/subscription-plans.
func (h *PlanHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}
	plans, err := h.facade.Plans(c.Request.Context(), q.RestaurantID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewPlanList(plans)))
}

// Get handles GET /api/subscription-plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	plan, err := h.facade.Plan(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewPlanResponse(*plan)))
}

// Create handles POST /api/subscription-plans.
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.PlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.facade.CreatePlan(c.Request.Context(), CurrentActor(c), req.Plan())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewPlanResponse(*plan)))
}

// Update handles PUT /api/subscription-plans/:id.
func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.facade.UpdatePlan(c.Request.Context(), CurrentActor(c), id, req.Plan())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewPlanResponse(*plan)))
}

// Delete handles DELETE /api/subscription-plans/:id.
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeletePlan(c.Request.Context(), CurrentActor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Piano eliminato"})
}

// PickupPointHandler serves pickup points.
type PickupPointHandler struct {
	facade CatalogFacade
}

func NewPickupPointHandler(facade CatalogFacade) *PickupPointHandler {
	return &PickupPointHandler{facade: facade}
}

// List handles GET /api/pickup-points.
func (h *PickupPointHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}
	points, err := h.facade.PickupPoints(c.Request.Context(), q.RestaurantID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewPickupPointList(points)))
}

// Nearby handles GET /api/pickup-points/nearby.
func (h *PickupPointHandler) Nearby(c *gin.Context) {
	origin, radius, ok := nearbyQuery(c)
	if !ok {
		return
	}
	items, err := h.facade.NearbyPickupPoints(c.Request.Context(), origin, radius)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NewNearbyPickupPointList(items)))
}

// Create handles POST /api/pickup-points.
func (h *PickupPointHandler) Create(c *gin.Context) {
	var req dto.PickupPointRequest
	if !bindJSON(c, &req) {
		return
	}
	point, err := h.facade.CreatePickupPoint(c.Request.Context(), CurrentActor(c), req.PickupPoint())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.NewPickupPointResponse(*point)))
}
