package controller

import (
	"context"
	"errors"
	"github.com/Evgen-Mutagen/go-ledger/internal/core"
	"github.com/Evgen-Mutagen/go-ledger/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/Evgen-Mutagen/go-ledger/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AccountController struct {
	accountService core.AccountService
	logger         *zap.Logger
}

func NewAccountController(accountService core.AccountService, logger *zap.Logger) *AccountController {
	return &AccountController{
		accountService: accountService,
		logger:         logger,
	}
}

type accountResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Balance   decimal.Decimal  `json:"balance"`
	Available decimal.Decimal  `json:"available"`
	Kind      model.Kind       `json:"kind"`
	Level     model.Level      `json:"level,omitempty"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func newAccountResponse(a *model.Account) accountResponse {
	resp := accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance,
		Available: a.Available(),
		Kind:      a.Kind(),
		CreatedAt: a.CreatedAt,
	}
	switch v := a.Variant.(type) {
	case model.Saving:
		resp.Level = v.Level
	case model.Credit:
		limit := v.Limit
		resp.Limit = &limit
	}
	return resp
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Required fields decode into NullDecimal or a pointer so an absent or
// misspelled key is a 400 and never reads as zero.
type balanceRequest struct {
	Balance decimal.NullDecimal `json:"balance"`
}

type levelRequest struct {
	Level *model.Level `json:"level"`
}

type limitRequest struct {
	Limit decimal.NullDecimal `json:"limit"`
}

func (c *AccountController) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.userID(w, r)
	if !ok {
		return
	}

	var request model.OpenAccountRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	account, err := c.accountService.Open(r.Context(), userID, request)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.userID(w, r)
	if !ok {
		return
	}

	order, err := model.ParseAccountOrder(r.URL.Query().Get("sort"))
	if err != nil {
		http.Error(w, "Invalid sort order", http.StatusBadRequest)
		return
	}

	accounts, err := c.accountService.List(r.Context(), userID, order)
	if err != nil {
		c.writeError(w, err)
		return
	}

	if len(accounts) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, newAccountResponse(a))
	}
	render.JSON(w, r, resp)
}

func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	account, err := c.accountService.Get(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) Info(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	account, err := c.accountService.Get(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.PlainText(w, r, account.Info())
}

func (c *AccountController) Deposit(w http.ResponseWriter, r *http.Request) {
	c.moveMoney(w, r, c.accountService.Deposit)
}

func (c *AccountController) Withdraw(w http.ResponseWriter, r *http.Request) {
	c.moveMoney(w, r, c.accountService.Withdraw)
}

func (c *AccountController) SetBalance(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	var request balanceRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if !request.Balance.Valid {
		http.Error(w, "balance is required", http.StatusBadRequest)
		return
	}

	account, err := c.accountService.SetBalance(r.Context(), userID, id, request.Balance.Decimal)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) SetLevel(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	var request levelRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if request.Level == nil || *request.Level == "" {
		http.Error(w, "level is required", http.StatusBadRequest)
		return
	}

	account, err := c.accountService.SetLevel(r.Context(), userID, id, *request.Level)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) SetLimit(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	var request limitRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if !request.Limit.Valid {
		http.Error(w, "limit is required", http.StatusBadRequest)
		return
	}

	account, err := c.accountService.SetLimit(r.Context(), userID, id, request.Limit.Decimal)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) Interest(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	quote, err := c.accountService.Interest(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, quote)
}

func (c *AccountController) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	account, err := c.accountService.ApplyInterest(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) Operations(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	operations, err := c.accountService.Operations(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, err)
		return
	}

	if len(operations) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	render.JSON(w, r, operations)
}

type moneyFunc func(ctx context.Context, userID, id int64, amount decimal.Decimal) (*model.Account, error)

func (c *AccountController) moveMoney(w http.ResponseWriter, r *http.Request, fn moneyFunc) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}

	var request amountRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	account, err := fn(r.Context(), userID, id, request.Amount)
	if err != nil {
		c.writeError(w, err)
		return
	}

	render.JSON(w, r, newAccountResponse(account))
}

func (c *AccountController) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middlewareinternal.GetUserIDFromContext(r.Context())
	if !ok {
		c.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// target resolves the caller and the {id} path parameter.
func (c *AccountController) target(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := c.userID(w, r)
	if !ok {
		return 0, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid account id", http.StatusBadRequest)
		return 0, 0, false
	}
	return userID, id, true
}

func (c *AccountController) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, service.ErrAccountAlreadyExists):
		http.Error(w, "Account already exists", http.StatusConflict)
	case errors.Is(err, model.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusPaymentRequired)
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrNoInterestTier),
		errors.Is(err, model.ErrNoCreditLimit),
		errors.Is(err, model.ErrLimitBelowDebt):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrInvalidAccountID),
		errors.Is(err, service.ErrEmptyAccountName),
		errors.Is(err, model.ErrInvalidLevel),
		errors.Is(err, model.ErrInvalidLimit),
		errors.Is(err, model.ErrInvalidKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		c.logger.Error("Account request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
