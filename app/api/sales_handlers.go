package api

import (
	"net/http"

	"SalesDashboard/app/models"

	"github.com/gin-gonic/gin"
)

type selectEmployeeRequest struct {
	EmployeeID int `json:"employee_id"`
}

// saleLineRequest updates a line; absent fields keep their current value
type saleLineRequest struct {
	ProductID *int `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

type selectSaleRequest struct {
	SaleID int `json:"sale_id"`
}

type returnedQuantityRequest struct {
	QuantityReturned int `json:"quantity_returned"`
}

type reasonRequest struct {
	Reason models.ReturnReason `json:"reason"`
}

type reviewRequest struct {
	Status models.ReconciliationStatus `json:"status"`
}

// Sales

func (h *Handlers) listSales(c *gin.Context) {
	ok(c, h.Sales.GetSales(query(c)))
}

func (h *Handlers) getSale(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	sale, err := h.Sales.GetSale(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sale)
}

func (h *Handlers) saleDraft(c *gin.Context) {
	ok(c, h.Sales.Builder().State())
}

func (h *Handlers) resetSale(c *gin.Context) {
	ok(c, h.Sales.Builder().Reset())
}

func (h *Handlers) selectSaleEmployee(c *gin.Context) {
	var req selectEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Sales.Builder().SelectEmployee(req.EmployeeID)
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) addSaleLine(c *gin.Context) {
	draft, err := h.Sales.Builder().AddLine()
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) setSaleLine(c *gin.Context) {
	index, valid := intParam(c, "index")
	if !valid {
		return
	}
	var req saleLineRequest
	if !bindJSON(c, &req) {
		return
	}

	builder := h.Sales.Builder()
	draft := builder.State()
	var err error
	switch {
	case req.ProductID != nil && req.Quantity != nil:
		draft, err = builder.SetLine(index, *req.ProductID, *req.Quantity)
	case req.ProductID != nil:
		draft, err = builder.SetLineProduct(index, *req.ProductID)
	case req.Quantity != nil:
		draft, err = builder.SetLineQuantity(index, *req.Quantity)
	}
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) removeSaleLine(c *gin.Context) {
	index, valid := intParam(c, "index")
	if !valid {
		return
	}
	draft, err := h.Sales.Builder().RemoveLine(index)
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) saveSale(c *gin.Context) {
	builder := h.Sales.Builder()
	sale, outcome, err := builder.Save()
	if err != nil {
		failWith(c, err, builder.State())
		return
	}
	done(c, http.StatusCreated, sale, outcome)
}

// Reconciliations

func (h *Handlers) listReconciliations(c *gin.Context) {
	ok(c, h.Reconciliations.GetReconciliations(query(c)))
}

func (h *Handlers) getReconciliation(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	rec, err := h.Reconciliations.GetReconciliation(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rec)
}

func (h *Handlers) reviewReconciliation(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, outcome, err := h.Reconciliations.ReviewReconciliation(id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, rec, outcome)
}

func (h *Handlers) reconciliationDraft(c *gin.Context) {
	ok(c, h.Reconciliations.Builder().State())
}

func (h *Handlers) resetReconciliation(c *gin.Context) {
	ok(c, h.Reconciliations.Builder().Reset())
}

func (h *Handlers) selectReconciliationSale(c *gin.Context) {
	var req selectSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Reconciliations.Builder().SelectSale(req.SaleID)
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) setReturnedQuantity(c *gin.Context) {
	index, valid := intParam(c, "index")
	if !valid {
		return
	}
	var req returnedQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Reconciliations.Builder().SetReturnedQuantity(index, req.QuantityReturned)
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) setReturnReason(c *gin.Context) {
	var req reasonRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Reconciliations.Builder().SetReason(req.Reason)
	if err != nil {
		failWith(c, err, draft)
		return
	}
	ok(c, draft)
}

func (h *Handlers) saveReconciliation(c *gin.Context) {
	builder := h.Reconciliations.Builder()
	rec, outcome, err := builder.Save()
	if err != nil {
		failWith(c, err, builder.State())
		return
	}
	done(c, http.StatusCreated, rec, outcome)
}
