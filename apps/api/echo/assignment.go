package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/academic"
)

type assignmentApi struct {
	svc      *academic.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, authed []echo.MiddlewareFunc, opts *Options) {
	api := assignmentApi{
		svc:      opts.AcademicSvc,
		validate: opts.Validate,
	}

	ag := g.Group("/assignments", append(authed, adminMiddleware(opts.UserSvc))...)
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	details, err := api.svc.QueryAssignments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if details == nil {
		details = []academic.AssignmentDetail{}
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data academic.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	asg, err := api.svc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning subject")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Unassign(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
