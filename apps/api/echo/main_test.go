package echoapi_test

import (
	"os"
	"testing"

	echoapi "github.com/campusdesk/portal/apps/api/echo"
	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
	emailsvc "github.com/campusdesk/portal/services/email"
	inmemdb "github.com/campusdesk/portal/storage/database/inmem"
)

var (
	db       *inmemdb.DB
	app      echoapi.Server
	usrRepo  user.Repository
	acadRepo academic.Repository
	progRepo progress.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func TestMain(m *testing.M) {
	// set up DB & repos
	db = inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	acadRepo = inmemdb.NewAcademicRepository(db)
	progRepo = inmemdb.NewProgressRepository(db)

	// set up services
	validate, translator := core.NewValidator()
	academic.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	usrSvc := user.NewService(usrRepo)
	acadSvc := academic.NewService(acadRepo, usrSvc)

	// set up server
	app = echoapi.NewServer(&echoapi.Options{
		TestMode:       true,
		DisableReqLogs: true,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        usrSvc,
		AcademicSvc:    acadSvc,
		ProgressSvc:    progress.NewService(progRepo, acadSvc),
		MailSvc:        emailsvc.NewConsoleServiceMock(core.Conf),
	})

	os.Exit(m.Run())
}
