package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/Eddy-C127/dance-academy/apps/api/echo"
	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/report"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
	emailsvc "github.com/Eddy-C127/dance-academy/services/email"
	logsvc "github.com/Eddy-C127/dance-academy/services/logger"
	"github.com/Eddy-C127/dance-academy/storage/database"
	sqlxrepos "github.com/Eddy-C127/dance-academy/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close DB", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	evalRepo := sqlxrepos.NewEvaluationRepository(db)
	achRepo := sqlxrepos.NewAchievementRepository(db)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	attSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db))
	stuSvc := student.NewService(sqlxrepos.NewStudentRepository(db), attSvc, evalRepo, achRepo)
	evalSvc := evaluation.NewService(db, evalRepo, stuSvc)
	pmtSvc := payment.NewService(sqlxrepos.NewPaymentRepository(db), mailSvc)
	evtSvc := event.NewService(sqlxrepos.NewEventRepository(db))
	reportSvc := report.NewService(usrSvc, attSvc, evalRepo, pmtSvc, evtSvc, stuSvc)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Address:        core.Conf.Server.Address(),
		UserSvc:        usrSvc,
		StudentSvc:     stuSvc,
		AttendanceSvc:  attSvc,
		EvaluationSvc:  evalSvc,
		PaymentSvc:     pmtSvc,
		EventSvc:       evtSvc,
		ReportSvc:      reportSvc,
		Logger:         logger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
	})

	go app.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
	defer cancel()

	if err = app.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB() (*database.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
