package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucsky/cuid"

	"carte/internal/cart"
	"carte/internal/orderexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler renders carts against their menu.
type OrderHandler struct {
	now func() time.Time
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler() *OrderHandler {
	return &OrderHandler{now: time.Now}
}

// Summary handles POST /api/v1/orders/summary
// @Summary Summarize an order
// @Description Resolves the cart against the menu with line totals and a formatted total
// @Tags orders
// @Accept json
// @Produce json
// @Param body body OrderRequest true "Menu and cart"
// @Success 200 {object} Response{data=cart.Summary}
// @Failure 400 {object} ErrorResponseBody "Invalid body"
// @Router /orders/summary [post]
func (h *OrderHandler) Summary(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	RespondOK(c, cart.Summarize(req.Menu, cart.Cart(req.Cart)))
}

// Export handles POST /api/v1/orders/export
// @Summary Export an order
// @Description Downloads the order as CSV or XLSX, e.g. to show a waiter
// @Tags orders
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param body body OrderRequest true "Menu and cart"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid body or format"
// @Router /orders/export [post]
func (h *OrderHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	summary := cart.Summarize(req.Menu, cart.Cart(req.Cart))
	reference := cuid.New()

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	var err error
	if format == "xlsx" {
		contentType = xlsxContentType
		err = orderexport.WriteXLSX(&buf, summary, reference)
	} else {
		err = orderexport.WriteCSV(&buf, summary)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+orderexport.BuildFilename(reference, format, h.now())+`"`)
	c.Header("X-Order-Reference", reference)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
