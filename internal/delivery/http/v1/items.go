package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/nonbon/internal/models"
	"github.com/adanyl0v/nonbon/internal/services"
)

type getItemResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Area   string `json:"area"`
	Status string `json:"status"`
}

func newGetItemResponse(item *models.FocusItem) getItemResponse {
	return getItemResponse{
		ID:     item.ID,
		Title:  item.Title,
		Area:   item.Area,
		Status: item.Status.String(),
	}
}

func newGetItemsResponse(items []models.FocusItem) []getItemResponse {
	response := make([]getItemResponse, len(items))
	for i := range items {
		response[i] = newGetItemResponse(&items[i])
	}
	return response
}

func (h *handlerImpl) HandleListItems(c *gin.Context) {
	items := h.focus.ListAll(c.Request.Context())
	h.log(c).Debug().
		Int("count", len(items)).
		Msg("fetched focus items")

	c.JSON(http.StatusOK, newGetItemsResponse(items))
}

func (h *handlerImpl) HandleListActiveItems(c *gin.Context) {
	items := h.focus.ListActive(c.Request.Context())
	h.log(c).Debug().
		Int("count", len(items)).
		Msg("fetched active focus items")

	c.JSON(http.StatusOK, newGetItemsResponse(items))
}

func (h *handlerImpl) HandleGetRandomBacklogItem(c *gin.Context) {
	item, err := h.focus.PickRandomBacklog(c.Request.Context())
	if err != nil {
		h.log(c).Warn().
			Err(err).
			Msg("failed to pick random backlog item")
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, newGetItemResponse(&item))
}

func (h *handlerImpl) HandleGetItem(c *gin.Context) {
	id, ok := h.parseItemID(c)
	if !ok {
		return
	}

	item, err := h.focus.GetItem(c.Request.Context(), id)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, newGetItemResponse(&item))
}

type createItemRequest struct {
	Title  string `json:"title"`
	Area   string `json:"area"`
	Status string `json:"status,omitempty"`
}

func (h *handlerImpl) HandleCreateItem(c *gin.Context) {
	var req createItemRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.log(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	item, err := h.focus.CreateItem(c.Request.Context(), services.CreateItemParams{
		Title:  req.Title,
		Area:   req.Area,
		Status: req.Status,
	})
	if err != nil {
		h.log(c).Warn().
			Err(err).
			Msg("failed to create focus item")
		abort(c, newServiceError(err))
		return
	}

	location := c.FullPath() + "/" + strconv.FormatInt(item.ID, 10)
	h.log(c).Debug().
		Int64("item_id", item.ID).
		Str("location", location).
		Msg("created focus item")

	c.Header("Location", location)
	c.JSON(http.StatusCreated, newGetItemResponse(&item))
}

// HandleSetItemStatus expects the new status as a bare JSON string body,
// e.g. "Done".
func (h *handlerImpl) HandleSetItemStatus(c *gin.Context) {
	id, ok := h.parseItemID(c)
	if !ok {
		return
	}

	var status string
	err := c.ShouldBindJSON(&status)
	if err != nil {
		h.log(c).Error().
			Err(err).
			Int64("item_id", id).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.focus.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.log(c).Warn().
			Err(err).
			Int64("item_id", id).
			Msg("failed to update focus item status")
		abort(c, newServiceError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

type healthResponse struct {
	Status string                `json:"status"`
	Counts map[models.Status]int `json:"counts"`
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Counts: h.focus.Stats(c.Request.Context()),
	})
}

func (h *handlerImpl) parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.log(c).Warn().
			Str("id", c.Param("id")).
			Msg("invalid focus item id")
		abort(c, newNotFoundError(errInvalidItemID.Error()))
		return 0, false
	}
	return id, true
}
