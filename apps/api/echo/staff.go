package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
)

type staffApi struct {
	usrSvc      *user.Service
	academicSvc *academic.Service
	progressSvc *progress.Service
}

func registerStaffAPI(g *echo.Group, authed []echo.MiddlewareFunc, opts *Options) {
	api := staffApi{
		usrSvc:      opts.UserSvc,
		academicSvc: opts.AcademicSvc,
		progressSvc: opts.ProgressSvc,
	}

	sg := g.Group("/staff", append(authed, staffMiddleware(opts.UserSvc))...)
	sg.GET("/subjects", api.querySubjects)
	sg.GET("/subjects/:subjectId/progress", api.retrieveProgress)
	sg.PUT("/subjects/:subjectId/progress", api.updateProgress)
	sg.POST("/progress/preview", api.previewProgress)
}

func (api *staffApi) querySubjects(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	subjects, err := api.academicSvc.StaffSubjects(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying staff subjects")
	}
	if subjects == nil {
		subjects = []academic.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *staffApi) retrieveProgress(ctx echo.Context) error {
	sess, err := getContextSession(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	sub, err := api.progressSvc.Get(ctx.Request().Context(), sess, ctx.Param("subjectId"))
	if err != nil {
		return errors.Wrap(err, "getting progress")
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{Submission: sub, LecturePercent: sub.LecturePercent()})
}

func (api *staffApi) updateProgress(ctx echo.Context) error {
	var form progress.Metrics
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to Metrics")
	}

	sess, err := getContextSession(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}

	sub, err := api.progressSvc.Upsert(ctx.Request().Context(), sess, ctx.Param("subjectId"), form)
	if err != nil {
		return errors.Wrap(err, "saving progress")
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{Submission: sub, LecturePercent: sub.LecturePercent()})
}

func (api *staffApi) previewProgress(ctx echo.Context) error {
	var form progress.Metrics
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to Metrics")
	}
	return ctx.JSON(http.StatusOK, PreviewResponse{LecturePercent: api.progressSvc.Preview(form)})
}

type (
	ProgressResponse struct {
		progress.Submission
		LecturePercent int `json:"lecture_percent"`
	}

	PreviewResponse struct {
		LecturePercent int `json:"lecture_percent"`
	}
)
