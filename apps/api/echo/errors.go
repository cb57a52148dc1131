package echoapi

import (
	"database/sql"
	"database/sql/driver"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
	exportsvc "github.com/campusdesk/portal/services/export"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errSessionExpired       = echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	errNotAssigned          = echo.NewHTTPError(http.StatusForbidden, progress.ErrNotAssigned.Error())
	errUnknownFormat        = echo.NewHTTPError(http.StatusBadRequest, exportsvc.ErrUnknownFormat.Error())
)

// httpError maps the domain errors that reach the handler to their HTTP counterpart.
func httpError(err error) error {
	switch errors.Cause(err) {
	case user.ErrNotFound, academic.ErrNotFound:
		return errHttpNotFound
	case user.ErrNoSession:
		return errUnauthorized
	case user.ErrSessionExpired:
		return errSessionExpired
	case progress.ErrForbidden:
		return errHttpForbidden
	case progress.ErrNotAssigned:
		return errNotAssigned
	case exportsvc.ErrUnknownFormat:
		return errUnknownFormat
	case sql.ErrConnDone, driver.ErrBadConn:
		return core.NewShutdownError("database connection lost: " + err.Error())
	}
	return err
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		mapped := httpError(err)
		switch origErr := errors.Cause(mapped).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			args := []interface{}{errors.Wrap(mapped, msg)}
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				args = append(args, user.Session{UserID: claims.Subject, Username: claims.Username, Role: claims.Role})
			}
			if logger != nil {
				logger.Error(msg, args...)
			}

			// shutting down...
			if core.IsShutdown(mapped) && signalShutdown != nil {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
