package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/account"
)

type studentAPI struct {
	identityAPI
}

func registerStudentAPI(g *echo.Group, authn echo.MiddlewareFunc, sess *session, svc *account.Service, validate *validator.Validate) {
	api := studentAPI{identityAPI{
		role:     account.RoleStudent,
		svc:      svc,
		sess:     sess,
		validate: validate,
	}}

	sg := g.Group("/students")

	// un-authed endpoints
	sg.POST("/register", api.create)
	sg.POST("/login", api.login)
	sg.POST("/logout", api.logout)

	// authed endpoints
	ag := sg.Group("", authn)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *studentAPI) create(ctx echo.Context) error {
	var data account.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.RegisterStudent(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, idt)
}

func (api *studentAPI) update(ctx echo.Context) error {
	var data account.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.UpdateStudent(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, idt)
}
