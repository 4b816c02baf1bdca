package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sthanna/UsTaxesFree/internal/auth"
	"github.com/sthanna/UsTaxesFree/internal/domain"
)

type w2Request struct {
	Employer           string  `json:"employer" binding:"required"`
	Wages              float64 `json:"wages"`
	FederalTaxWithheld float64 `json:"federalTaxWithheld"`
}

// AddW2 attaches a W-2.
func (h *Handler) AddW2(c *gin.Context) {
	var req w2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Returns.AddW2(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"),
		req.Employer, req.Wages, req.FederalTaxWithheld)
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListW2s lists W-2s on a return.
func (h *Handler) ListW2s(c *gin.Context) {
	records, err := h.Returns.ListW2s(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteW2 removes a W-2.
func (h *Handler) DeleteW2(c *gin.Context) {
	err := h.Returns.DeleteW2(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), c.Param("docId"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

type form1099Request struct {
	Payer  string  `json:"payer"`
	Kind   string  `json:"kind" binding:"required"`
	Amount float64 `json:"amount"`
}

// Add1099 attaches a 1099-INT or 1099-DIV.
func (h *Handler) Add1099(c *gin.Context) {
	var req form1099Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Returns.Add1099(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"),
		req.Payer, req.Kind, req.Amount)
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// List1099s lists 1099s on a return.
func (h *Handler) List1099s(c *gin.Context) {
	records, err := h.Returns.List1099s(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, records)
}

// Delete1099 removes a 1099.
func (h *Handler) Delete1099(c *gin.Context) {
	err := h.Returns.Delete1099(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), c.Param("docId"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

type transactionRequest struct {
	Description string  `json:"description"`
	Proceeds    float64 `json:"proceeds"`
	CostBasis   float64 `json:"costBasis"`
	IsLongTerm  bool    `json:"isLongTerm"`
}

// AddTransaction attaches a 1099-B sale.
func (h *Handler) AddTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Returns.AddTransaction(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"),
		domain.StockTransaction{
			Description: req.Description,
			Proceeds:    req.Proceeds,
			CostBasis:   req.CostBasis,
			IsLongTerm:  req.IsLongTerm,
		})
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListTransactions lists 1099-B sales on a return.
func (h *Handler) ListTransactions(c *gin.Context) {
	records, err := h.Returns.ListTransactions(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteTransaction removes a sale.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	err := h.Returns.DeleteTransaction(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), c.Param("docId"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

type dependentRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	DateOfBirth  string `json:"dateOfBirth" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
}

// AddDependent attaches a dependent. Dates arrive as YYYY-MM-DD.
func (h *Handler) AddDependent(c *gin.Context) {
	var req dependentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfBirth must be YYYY-MM-DD"})
		return
	}

	rec, err := h.Returns.AddDependent(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"),
		req.FirstName, req.LastName, req.Relationship, dob)
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListDependents lists dependents on a return.
func (h *Handler) ListDependents(c *gin.Context) {
	records, err := h.Returns.ListDependents(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteDependent removes a dependent.
func (h *Handler) DeleteDependent(c *gin.Context) {
	err := h.Returns.DeleteDependent(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), c.Param("docId"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

type schedule1Request struct {
	AdditionalIncome float64 `json:"additionalIncome"`
	Adjustments      float64 `json:"adjustments"`
}

// UpdateSchedule1 stores the Schedule 1 totals.
func (h *Handler) UpdateSchedule1(c *gin.Context) {
	var req schedule1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Returns.UpdateSchedule1(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"),
		req.AdditionalIncome, req.Adjustments)
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

type paymentsRequest struct {
	TaxPayments float64 `json:"taxPayments"`
}

// UpdatePayments stores the estimated payment total.
func (h *Handler) UpdatePayments(c *gin.Context) {
	var req paymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Returns.UpdatePayments(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), req.TaxPayments)
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// SetItemized stores the Schedule A categories.
func (h *Handler) SetItemized(c *gin.Context) {
	var req domain.ItemizedDeductions
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Returns.SetItemized(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), req)
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearItemized reverts the return to the standard deduction.
func (h *Handler) ClearItemized(c *gin.Context) {
	err := h.Returns.ClearItemized(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
