package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"rentit/internal/models"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type ItemHandler struct {
	itemService services.ItemService
}

func NewItemHandler(itemService services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// ListItems serves the public catalogue. A valid lng/lat pair switches to a
// nearest-first search within radius meters.
func (h *ItemHandler) ListItems(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := itemFilterFromQuery(c)
	filter.Search = params.Search

	items, total, err := h.itemService.ListItems(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(items),
	}

	utils.SuccessResponseWithMeta(c, "Items retrieved successfully", items, meta)
}

func itemFilterFromQuery(c *gin.Context) *models.ItemFilter {
	filter := &models.ItemFilter{
		MinPrice: queryFloat(c, "min_price"),
		MaxPrice: queryFloat(c, "max_price"),
	}

	if unit := models.PriceUnit(c.Query("price_unit")); unit.IsValid() {
		filter.PriceUnit = unit
	}

	lng, lat := queryFloat(c, "lng"), queryFloat(c, "lat")
	if lng != nil && lat != nil && utils.IsValidCoordinates(*lat, *lng) {
		filter.Longitude = lng
		filter.Latitude = lat
		if radius := queryFloat(c, "radius"); radius != nil && *radius > 0 {
			filter.RadiusMeters = *radius
		}
	}

	return filter
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CreateItemRequest
	if !bindJSON(c, &request) {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), ownerID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Item created successfully", item)
}

// CreateItemWithImages accepts the item fields and its images in one
// multipart form. coordinates is a JSON "[lng,lat]" string.
func (h *ItemHandler) CreateItemWithImages(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	request := validators.CreateItemRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Address:     c.PostForm("address"),
		PriceUnit:   models.PriceUnit(c.PostForm("price_unit")),
		Remarks:     c.PostForm("remarks"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid price")
			return
		}
		request.Price = price
	}

	if raw := c.PostForm("coordinates"); raw != "" {
		coordinates, err := utils.ParseCoordinates(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid coordinates")
			return
		}
		request.Coordinates = coordinates
	}

	item, err := h.itemService.CreateItemWithImages(c.Request.Context(), ownerID, &request, form.File["images"])
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Item created successfully", item)
}

func (h *ItemHandler) UploadImages(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		utils.BadRequestResponse(c, "No images uploaded")
		return
	}

	urls, err := h.itemService.UploadImages(c.Request.Context(), ownerID, form.File["images"])
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Images uploaded successfully", gin.H{"images": urls})
}

func (h *ItemHandler) GetMyItems(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.itemService.GetMyItems(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Items retrieved successfully", items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := paramID(c, "id", "Invalid item ID")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item retrieved successfully", item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "Invalid item ID")
	if !ok {
		return
	}

	var request validators.UpdateItemRequest
	if !bindJSON(c, &request) {
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), ownerID, id, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item updated successfully", item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "Invalid item ID")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), ownerID, id); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item deleted", nil)
}
