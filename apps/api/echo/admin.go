package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/account"
)

type adminAPI struct {
	identityAPI
}

func registerAdminAPI(g *echo.Group, authn echo.MiddlewareFunc, sess *session, svc *account.Service, validate *validator.Validate) {
	api := adminAPI{identityAPI{
		role:     account.RoleAdmin,
		svc:      svc,
		sess:     sess,
		validate: validate,
	}}

	adg := g.Group("/admins")

	// un-authed endpoints
	adg.POST("/register", api.create)
	adg.POST("/login", api.login)
	adg.POST("/logout", api.logout)

	// authed endpoints
	ag := adg.Group("", authn)
	ag.GET("/:id", api.retrieve)
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *adminAPI) create(ctx echo.Context) error {
	var data account.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.RegisterAdmin(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, idt)
}
