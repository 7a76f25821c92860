package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

type ShopHandler struct {
	checkStatus *ucBooking.CheckShopStatus
}

func NewShopHandler(checkStatus *ucBooking.CheckShopStatus) *ShopHandler {
	return &ShopHandler{checkStatus: checkStatus}
}

func (h *ShopHandler) Status(c *gin.Context) {
	httpresp.OK(c, h.checkStatus.Execute(c.Request.Context()))
}

func (h *ShopHandler) Services(c *gin.Context) {
	httpresp.List(c, domain.Catalog())
}
