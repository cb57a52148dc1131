package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
	exportsvc "github.com/campusdesk/portal/services/export"
)

type reportApi struct {
	usrSvc      *user.Service
	progressSvc *progress.Service
	mailSvc     core.EmailService
	validate    *validator.Validate
}

func registerReportAPI(g *echo.Group, authed []echo.MiddlewareFunc, opts *Options) {
	api := reportApi{
		usrSvc:      opts.UserSvc,
		progressSvc: opts.ProgressSvc,
		mailSvc:     opts.MailSvc,
		validate:    opts.Validate,
	}

	rg := g.Group("/reports", append(authed, adminMiddleware(opts.UserSvc))...)
	rg.GET("/progress", api.progress)
	rg.POST("/progress/email", api.emailProgress)
}

func (api *reportApi) report(ctx echo.Context) ([]progress.ReportRow, error) {
	sess, err := getContextSession(ctx, api.usrSvc)
	if err != nil {
		return nil, errors.Wrap(err, "getting context session")
	}
	rows, err := api.progressSvc.Report(ctx.Request().Context(), sess)
	return rows, errors.Wrap(err, "building progress report")
}

func (api *reportApi) progress(ctx echo.Context) error {
	format, err := exportsvc.ParseFormat(ctx.QueryParam("format"))
	if err != nil {
		return err
	}

	rows, err := api.report(ctx)
	if err != nil {
		return err
	}

	if format == exportsvc.FormatJSON {
		entries := make([]ReportEntry, 0, len(rows))
		for i, row := range rows {
			entries = append(entries, ReportEntry{ReportRow: row, Cells: progress.Render(i+1, row)})
		}
		return ctx.JSON(http.StatusOK, entries)
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, format.ContentType())
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.Filename()))
	res.WriteHeader(http.StatusOK)
	return errors.Wrap(exportsvc.Write(format, res, rows), "writing progress report")
}

func (api *reportApi) emailProgress(ctx echo.Context) error {
	var data EmailReportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EmailReportRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rows, err := api.report(ctx)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err = exportsvc.XLSX(buf, rows); err != nil {
		return errors.Wrap(err, "writing progress report")
	}

	msg := &core.EmailMessage{
		To:      []mail.Address{{Address: data.To}},
		Subject: exportsvc.SheetName,
		BodyStr: fmt.Sprintf("Please find attached the %s (%d subjects).", exportsvc.SheetName, len(rows)),
	}
	msg.Attach(buf.Bytes(), exportsvc.FormatXLSX.Filename(), exportsvc.FormatXLSX.ContentType())
	api.mailSvc.SendMessages(msg)

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "The report has been sent to " + data.To + "."})
}

type (
	// ReportEntry is a report row with its rendered cells.
	ReportEntry struct {
		progress.ReportRow
		Cells progress.Cells `json:"cells"`
	}

	EmailReportRequest struct {
		To string `json:"to" validate:"required,email"`
	}
)

func (er *EmailReportRequest) Validate(validate *validator.Validate) error {
	er.To = core.CleanString(er.To, true /* lower */)
	return validate.Struct(er)
}
