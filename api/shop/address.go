package shop

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type AddressRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Notes   string `json:"notes"`
}

// AddressUpdateRequest changes only the fields that are present.
type AddressUpdateRequest struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	Pincode *string `json:"pincode"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

func (r AddressUpdateRequest) fields() bson.M {
	fields := bson.M{}
	for name, value := range map[string]*string{
		"address": r.Address,
		"city":    r.City,
		"pincode": r.Pincode,
		"phone":   r.Phone,
		"notes":   r.Notes,
	} {
		if value != nil {
			fields[name] = *value
		}
	}
	return fields
}

type AddressHandler struct {
	repo repository.AddressRepository
}

func NewAddressHandler(repo repository.AddressRepository) *AddressHandler {
	return &AddressHandler{repo: repo}
}

func RegisterAddressRoutes(rg *gin.RouterGroup, repo repository.AddressRepository) {
	handler := NewAddressHandler(repo)

	rg.POST("", handler.AddAddress)
	rg.GET("/:userId", handler.FetchAllAddress)
	rg.PUT("/:userId/:addressId", middleware.ObjectIDParamMiddleware("addressId"), handler.EditAddress)
	rg.DELETE("/:userId/:addressId", middleware.ObjectIDParamMiddleware("addressId"), handler.DeleteAddress)
}

func (h *AddressHandler) AddAddress(c *gin.Context) {
	var request AddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid data provided")
		return
	}

	address := domain.Address{
		UserID:  request.UserID,
		Address: request.Address,
		City:    request.City,
		Pincode: request.Pincode,
		Phone:   request.Phone,
		Notes:   request.Notes,
	}
	if err := h.repo.Save(c.Request.Context(), &address); err != nil {
		api.InternalError(c, err, "Error adding address")
		return
	}

	c.JSON(http.StatusCreated, api.BaseResponse{Success: true, Data: address})
}

func (h *AddressHandler) FetchAllAddress(c *gin.Context) {
	addresses, err := h.repo.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.InternalError(c, err, "Error fetching addresses")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: addresses})
}

func (h *AddressHandler) EditAddress(c *gin.Context) {
	var request AddressUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid data provided")
		return
	}
	fields := request.fields()
	if len(fields) == 0 {
		api.Fail(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	address, err := h.repo.UpdateForUser(c.Request.Context(), c.Param("userId"), middleware.ObjectID(c, "addressId"), fields)
	if err != nil {
		api.InternalError(c, err, "Error editing address")
		return
	}
	if address == nil {
		api.Fail(c, http.StatusNotFound, "Address not found")
		return
	}

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: address})
}

func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	deleted, err := h.repo.DeleteForUser(c.Request.Context(), c.Param("userId"), middleware.ObjectID(c, "addressId"))
	if err != nil {
		api.InternalError(c, err, "Error deleting address")
		return
	}
	if !deleted {
		api.Fail(c, http.StatusNotFound, "Address not found")
		return
	}

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Message: "Address deleted successfully"})
}
