package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type amenityRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary      List amenities
// @Tags         amenities
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, amenities"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/amenities [get]
// @Security     BearerAuth
func (h *Handler) listAmenities(c *gin.Context) {
	amenities, err := h.services.Amenities.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("amenities_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list amenities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(amenities),
		"amenities": amenities,
	})
}

// @Summary      Create amenity
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Param        body  body  amenityRequest  true  "Amenity name"
// @Success      200   {object}  models.Amenity
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/amenities [post]
// @Security     BearerAuth
func (h *Handler) createAmenity(c *gin.Context) {
	var req amenityRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	amenity, err := h.services.Amenities.Create(c.Request.Context(), req.Name, identityFromContext(c))
	if err != nil {
		h.writeListingError(c, err, "amenity_create_failed", "name", req.Name)
		return
	}
	c.JSON(http.StatusOK, amenity)
}
