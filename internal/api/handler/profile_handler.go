package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberchat/member-service/internal/core/ports"
)

type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

type profileRequest struct {
	Username *string `json:"username" validate:"omitempty,max=150"`
}

// Get returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	profile, err := h.accounts.GetProfile(c.Request().Context(), account)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update replaces the caller's profile. Every field is required.
//
// @Summary      Replace own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// Patch changes only the fields present in the body.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/profile [patch]
func (h *ProfileHandler) Patch(c echo.Context) error {
	return h.update(c, true)
}

func (h *ProfileHandler) update(c echo.Context, partial bool) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.accounts.UpdateProfile(c.Request().Context(), account, ports.ProfileUpdate{
		Username: req.Username,
		Partial:  partial,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
