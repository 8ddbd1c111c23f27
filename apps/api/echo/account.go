package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/auth"
)

type (
	// LoginResponse carries the issued token and the claims it encodes,
	// mirroring what the session cookie holds. The password hash never
	// appears here.
	LoginResponse struct {
		Token     string `json:"token"`
		UserID    string `json:"user_id"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		Age       int    `json:"age,omitempty"`
		Gender    string `json:"gender,omitempty"`
		ExpiresAt int64  `json:"expires_at"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func newLoginResponse(claims auth.Claims, token string) LoginResponse {
	return LoginResponse{
		Token:     token,
		UserID:    claims.UserID(),
		Name:      claims.Name,
		Role:      claims.Role,
		Age:       claims.Age,
		Gender:    claims.Gender,
		ExpiresAt: claims.ExpiresAt,
	}
}

// identityAPI implements the handlers shared by the student, teacher and
// admin resources; each resource pins it to its role.
type identityAPI struct {
	role     string
	svc      *account.Service
	sess     *session
	validate *validator.Validate
}

func (api *identityAPI) login(ctx echo.Context) error {
	var data account.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.Authenticate(ctx.Request().Context(), api.role, data.ID, data.Password)
	if err != nil {
		return err
	}

	claims, token, err := api.sess.login(ctx, idt)
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}
	return ctx.JSON(http.StatusOK, newLoginResponse(claims, token))
}

func (api *identityAPI) logout(ctx echo.Context) error {
	api.sess.clearTokenCookie(ctx)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

func (api *identityAPI) retrieve(ctx echo.Context) error {
	idt, err := api.svc.Get(ctx.Request().Context(), api.role, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, idt)
}

func (api *identityAPI) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	identities, err := api.svc.Query(ctx.Request().Context(), api.role, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying identities")
	}
	if identities == nil {
		identities = []account.Identity{}
	}
	return ctx.JSON(http.StatusOK, identities)
}

func (api *identityAPI) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), api.role, ctx.Param("id")); err != nil {
		return err
	}
	// the deleted identity may be the caller's; kill the session either way
	api.sess.clearTokenCookie(ctx)
	return ctx.NoContent(http.StatusNoContent)
}
