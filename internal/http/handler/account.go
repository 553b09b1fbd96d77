package handler

import (
	"errors"
	"net/http"
	"strings"

	"auth-gateway/internal/domain/account"
	"auth-gateway/internal/repository"
	apperrors "auth-gateway/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler serves the account profile reads guarded by the
// self-or-admin route rules. Ownership is enforced by the authorization
// middleware before these handlers run.
type AccountHandler struct {
	accounts repository.AccountRepository
}

func NewAccountHandler(accounts repository.AccountRepository) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type AccountResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	roles := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		roles[i] = string(r)
	}

	return AccountResponse{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Roles: roles,
	}
}

func (h *AccountHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAccountID)
	}

	a, err := h.accounts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAccountNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) GetByEmail(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("value")))
	if email == "" {
		return respondError(c, http.StatusBadRequest, msgEmailRequired)
	}

	a, err := h.accounts.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAccountNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(a))
}
