package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"accommodation_finder/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusDeleted = "deleted"

	errInvalidID      = "invalid id"
	errInvalidBroker  = "invalid broker id"
	errInvalidPhotoID = "invalid photo id"
	errListListings   = "failed to list accommodations"
)

// accommodationRequest is the payload for both create and update. The
// broker is never read from the body; photo_urls are honored on create only.
type accommodationRequest struct {
	Title                  string   `json:"title" binding:"required"`
	Address                string   `json:"address" binding:"required"`
	Price                  float64  `json:"price"`
	DistanceFromUniversity float64  `json:"distance_from_university"`
	ContactEmail           string   `json:"contact_email" binding:"required"`
	ContactPhone           string   `json:"contact_phone" binding:"required"`
	AmenityIDs             []int    `json:"amenity_ids"`
	PhotoURLs              []string `json:"photo_urls"`
}

type photoRequest struct {
	PhotoURL string `json:"photo_url" binding:"required"`
}

func (r accommodationRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:                  r.Title,
		Address:                r.Address,
		Price:                  r.Price,
		DistanceFromUniversity: r.DistanceFromUniversity,
		ContactEmail:           r.ContactEmail,
		ContactPhone:           r.ContactPhone,
		AmenityIDs:             r.AmenityIDs,
		PhotoURLs:              r.PhotoURLs,
	}
}

// writeListingError maps service errors to status codes; anything
// unrecognized is a 500 with structured logging.
func (h *Handler) writeListingError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAmenityExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// @Summary      List accommodations
// @Tags         accommodations
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, accommodations"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/accommodations [get]
func (h *Handler) listAccommodations(c *gin.Context) {
	listings, err := h.services.Listings.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("accommodations_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errListListings})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":          len(listings),
		"accommodations": listings,
	})
}

// @Summary      Get accommodation
// @Tags         accommodations
// @Produce      json
// @Param        id  path  int  true  "Accommodation ID"
// @Success      200  {object}  models.Accommodation
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/accommodations/{id} [get]
func (h *Handler) getAccommodation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	listing, err := h.services.Listings.Get(c.Request.Context(), id)
	if err != nil {
		h.writeListingError(c, err, "accommodation_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary      List accommodations by broker
// @Tags         accommodations
// @Produce      json
// @Param        brokerId  path  int  true  "Broker user ID"
// @Success      200  {object}  map[string]interface{}  "count, accommodations"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/accommodations/broker/{brokerId} [get]
func (h *Handler) listAccommodationsByBroker(c *gin.Context) {
	brokerID, ok := pathID(c, "brokerId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBroker})
		return
	}
	listings, err := h.services.Listings.ListByBroker(c.Request.Context(), brokerID)
	if err != nil {
		h.writeListingError(c, err, "accommodations_by_broker_failed", "broker_id", brokerID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":          len(listings),
		"accommodations": listings,
	})
}

// @Summary      Create accommodation
// @Description  Requires BROKER role; the broker is taken from the token, not the body
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Param        body  body  accommodationRequest  true  "Listing payload"
// @Success      200   {object}  models.Accommodation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/accommodations [post]
// @Security     BearerAuth
func (h *Handler) createAccommodation(c *gin.Context) {
	var req accommodationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	listing, err := h.services.Listings.Create(c.Request.Context(), req.toInput(), identityFromContext(c))
	if err != nil {
		h.writeListingError(c, err, "accommodation_create_failed", "title", req.Title)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary      Update accommodation
// @Description  Replaces scalar fields and the whole amenity set; broker and photos are untouched
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Accommodation ID"
// @Param        body  body  accommodationRequest  true  "Listing payload"
// @Success      200   {object}  models.Accommodation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/accommodations/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateAccommodation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	var req accommodationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	listing, err := h.services.Listings.Update(c.Request.Context(), id, req.toInput(), identityFromContext(c))
	if err != nil {
		h.writeListingError(c, err, "accommodation_update_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary      Delete accommodation
// @Description  Cascades deletion of all photos owned by the listing
// @Tags         accommodations
// @Produce      json
// @Param        id  path  int  true  "Accommodation ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/accommodations/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAccommodation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	if err := h.services.Listings.Delete(c.Request.Context(), id, identityFromContext(c)); err != nil {
		h.writeListingError(c, err, "accommodation_delete_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Add photo
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Param        id    path  int           true  "Accommodation ID"
// @Param        body  body  photoRequest  true  "Photo payload"
// @Success      200   {object}  models.Photo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/accommodations/{id}/photos [post]
// @Security     BearerAuth
func (h *Handler) addPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	var req photoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	photo, err := h.services.Listings.AddPhoto(c.Request.Context(), id, req.PhotoURL, identityFromContext(c))
	if err != nil {
		h.writeListingError(c, err, "photo_add_failed", "accommodation_id", id)
		return
	}
	c.JSON(http.StatusOK, photo)
}

// @Summary      Remove photo
// @Tags         accommodations
// @Produce      json
// @Param        id       path  int  true  "Accommodation ID"
// @Param        photoId  path  int  true  "Photo ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/accommodations/{id}/photos/{photoId} [delete]
// @Security     BearerAuth
func (h *Handler) removePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	photoID, ok := pathID(c, "photoId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPhotoID})
		return
	}
	if err := h.services.Listings.RemovePhoto(c.Request.Context(), id, photoID, identityFromContext(c)); err != nil {
		h.writeListingError(c, err, "photo_remove_failed", "accommodation_id", id, "photo_id", photoID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
