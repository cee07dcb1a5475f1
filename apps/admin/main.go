package main

import (
	"log"
	"os"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/storage/database"
	sqlxrepos "github.com/Eddy-C127/dance-academy/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: sqlxrepos.NewUserRepository(db),
		stuRepo: sqlxrepos.NewStudentRepository(db),
		pmtRepo: sqlxrepos.NewPaymentRepository(db),
		evtRepo: sqlxrepos.NewEventRepository(db),
		achRepo: sqlxrepos.NewAchievementRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
