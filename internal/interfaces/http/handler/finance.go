package handler

import (
	"strings"

	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/gin-gonic/gin"
)

// FinanceHandler exposes receivable account provisioning
type FinanceHandler struct {
	BaseHandler
	accounts *lifecycle.AccountManager
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(accounts *lifecycle.AccountManager) *FinanceHandler {
	return &FinanceHandler{accounts: accounts}
}

// EnsureReceivableAccountRequest names the currency to provision
type EnsureReceivableAccountRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}

// ReceivableAccountResponse names the receivable account for a currency
type ReceivableAccountResponse struct {
	Currency string `json:"currency"`
	Account  string `json:"account"`
}

// EnsureReceivableAccount creates the "Debtors {CUR}" account when missing
// and returns its name. Repeating the call returns the same account.
func (h *FinanceHandler) EnsureReceivableAccount(c *gin.Context) {
	var req EnsureReceivableAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.accounts.EnsureAccount(c.Request.Context(), req.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ReceivableAccountResponse{
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
		Account:  account,
	})
}
