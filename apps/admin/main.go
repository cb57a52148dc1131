package main

import (
	"log"
	"os"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/user"
	logsvc "github.com/campusdesk/portal/services/logger"
	"github.com/campusdesk/portal/storage/database"
	sqlxrepos "github.com/campusdesk/portal/storage/database/sqlx"
)

func main() {
	conf := core.Conf

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal("creating database", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}

	validate, translator := core.NewValidator()
	academic.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:         db,
		usrSvc:     user.NewService(sqlxrepos.NewUserRepository(db)),
		validate:   validate,
		translator: translator,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		logger.Wait()
		os.Exit(1)
	}
	logger.Wait()
}
