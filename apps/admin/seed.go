package main

import (
	"context"
	"time"

	"github.com/Eddy-C127/dance-academy/core/achievement"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
)

const seedPassword = "academia123"

// seed loads a small demo dataset: one admin, one teacher, two families with
// their students, plus payments, events and a few badges. Users are upserted
// by email so running it twice does not duplicate accounts.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	now := time.Now().UTC()

	seedUsers := []user.User{
		{Name: "Diana Reyes", Email: "admin@academia.test", Role: user.RoleAdmin},
		{Name: "Carla Mendez", Email: "teacher@academia.test", Role: user.RoleTeacher},
		{Name: "Laura Gomez", Email: "laura@academia.test", Role: user.RoleParent, Phone: "555-0101"},
		{Name: "Miguel Torres", Email: "miguel@academia.test", Role: user.RoleParent, Phone: "555-0102"},
	}
	usersByEmail := make(map[string]user.User, len(seedUsers))
	for _, usr := range seedUsers {
		if existing, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: usr.Email}); err == nil {
			usr.ID = existing.ID
			usr.CreatedAt = existing.CreatedAt
		} else if err != user.ErrNotFound {
			return err
		} else {
			usr.CreatedAt = now
		}
		usr.UpdatedAt = now
		usr.SetActive(true)
		if err := usr.SetPassword(seedPassword); err != nil {
			return err
		}
		created, err := cli.usrRepo.UpdateOrCreateUser(ctx, usr)
		if err != nil {
			return err
		}
		usersByEmail[created.Email] = created
	}

	seedStudents := []student.Student{
		{Name: "Sofia Gomez", Specialty: "Ballet", Level: "Intermediate", GuardianID: usersByEmail["laura@academia.test"].ID, BirthDate: date(2015, 4, 12)},
		{Name: "Valentina Gomez", Specialty: "Jazz", Level: "Beginner", GuardianID: usersByEmail["laura@academia.test"].ID, BirthDate: date(2017, 9, 3)},
		{Name: "Emma Torres", Specialty: "Ballet", Level: "Intermediate", GuardianID: usersByEmail["miguel@academia.test"].ID, BirthDate: date(2014, 1, 28)},
	}
	students := make([]student.Student, 0, len(seedStudents))
	for _, stu := range seedStudents {
		stu.CreatedAt = now
		created, err := cli.stuRepo.CreateStudent(ctx, stu)
		if err != nil {
			return err
		}
		students = append(students, created)
	}

	seedPayments := []payment.Payment{
		{StudentID: students[0].ID, Concept: "Monthly tuition - August", Amount: 120, DueDate: now.AddDate(0, 0, -10), Status: payment.StatusPending},
		{StudentID: students[1].ID, Concept: "Monthly tuition - September", Amount: 120, DueDate: now.AddDate(0, 0, 20), Status: payment.StatusPending},
		{StudentID: students[2].ID, Concept: "Recital costume", Amount: 45, DueDate: now.AddDate(0, 0, 5), Status: payment.StatusPending},
	}
	for _, pmt := range seedPayments {
		if _, err := cli.pmtRepo.CreatePayment(ctx, pmt); err != nil {
			return err
		}
	}

	seedEvents := []event.Event{
		{Title: "Winter Recital", Type: event.TypeRecital, Location: "Main Theater", Date: now.AddDate(0, 1, 0), Description: "End of season showcase."},
		{Title: "Regional Competition", Type: event.TypeCompetition, Location: "City Arena", Date: now.AddDate(0, 2, 0)},
		{Title: "Parents Meeting", Type: event.TypeMeeting, Location: "Studio B", Date: now.AddDate(0, 0, 7)},
	}
	for _, evt := range seedEvents {
		if _, err := cli.evtRepo.CreateEvent(ctx, evt); err != nil {
			return err
		}
	}

	seedAchievements := []achievement.Achievement{
		{StudentID: students[0].ID, Title: "Perfect Attendance", Icon: "🏆", Date: now.AddDate(0, 0, -14), Description: "A full month without a single absence."},
		{StudentID: students[0].ID, Title: "Star of the Week", Icon: "⭐", Date: now.AddDate(0, 0, -7)},
		{StudentID: students[2].ID, Title: "Most Improved", Icon: "🚀", Date: now.AddDate(0, 0, -3)},
	}
	for _, ach := range seedAchievements {
		if _, err := cli.achRepo.CreateAchievement(ctx, ach); err != nil {
			return err
		}
	}

	logger.Printf("seeded %d users, %d students, %d payments, %d events, %d achievements\n",
		len(seedUsers), len(seedStudents), len(seedPayments), len(seedEvents), len(seedAchievements))
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
