package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/academic"
)

var errSubjNotFoundInCtx = errors.New("subject object not found in echo.Context")

type subjectApi struct {
	svc      *academic.Service
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, authed []echo.MiddlewareFunc, opts *Options) {
	api := subjectApi{
		svc:      opts.AcademicSvc,
		validate: opts.Validate,
	}

	sg := g.Group("/subjects", append(authed, adminMiddleware(opts.UserSvc))...)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/classes", api.queryClasses)

	dg := sg.Group("/:id", subjectObjectMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *subjectApi) query(ctx echo.Context) error {
	var class academic.ClassRank
	if val := ctx.QueryParam("class"); val != "" {
		var err error
		if class, err = academic.ParseClass(val); err != nil {
			return ctx.JSON(http.StatusOK, []academic.Subject{})
		}
	}

	subjects, err := api.svc.QuerySubjects(ctx.Request().Context(), class)
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []academic.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) queryClasses(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, academic.ClassOptions())
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data academic.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	subj, err := api.svc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	subj, ok := ctx.Get(contextObjectKey).(academic.Subject)
	if !ok {
		return errors.Wrap(errSubjNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, subj)
}

func (api *subjectApi) update(ctx echo.Context) error {
	subj, ok := ctx.Get(contextObjectKey).(academic.Subject)
	if !ok {
		return errors.Wrap(errSubjNotFoundInCtx, "retrieving object from context")
	}

	var data academic.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(subj, api.validate); err != nil {
		return err
	}

	subj, err := api.svc.UpdateSubject(ctx.Request().Context(), subj.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, subj)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	subj, ok := ctx.Get(contextObjectKey).(academic.Subject)
	if !ok {
		return errors.Wrap(errSubjNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.DeleteSubject(ctx.Request().Context(), subj.ID); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// subjectObjectMiddleware loads the Subject identified by the `id` path param into the context.
func subjectObjectMiddleware(svc *academic.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			subj, err := svc.GetSubject(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == academic.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding subject by ID")
			}
			ctx.Set(contextObjectKey, subj)
			return next(ctx)
		}
	}
}
