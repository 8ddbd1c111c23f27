package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/account"
)

type teacherAPI struct {
	identityAPI
}

func registerTeacherAPI(g *echo.Group, authn echo.MiddlewareFunc, sess *session, svc *account.Service, validate *validator.Validate) {
	api := teacherAPI{identityAPI{
		role:     account.RoleTeacher,
		svc:      svc,
		sess:     sess,
		validate: validate,
	}}

	tg := g.Group("/teachers")

	// un-authed endpoints
	tg.POST("/register", api.create)
	tg.POST("/login", api.login)
	tg.POST("/logout", api.logout)

	// authed endpoints
	ag := tg.Group("", authn)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update, adminMiddleware())
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *teacherAPI) create(ctx echo.Context) error {
	var data account.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.RegisterTeacher(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, idt)
}

func (api *teacherAPI) update(ctx echo.Context) error {
	var data account.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idt, err := api.svc.UpdateTeacher(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, idt)
}
