package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
)

// ReminderService runs the daily overdue-return sweep.
type ReminderService struct {
	loanRepo repositories.LoanRepository
	notify   *NotificationService
	cron     *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(loanRepo repositories.LoanRepository, notify *NotificationService) *ReminderService {
	return &ReminderService{
		loanRepo: loanRepo,
		notify:   notify,
		cron:     cron.New(),
	}
}

// Start schedules the sweep every morning at 08:30.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("30 8 * * *", s.RunOverdueSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("✅ Overdue reminder scheduler started (daily 08:30)")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Overdue reminder scheduler stopped")
}

// RunOverdueSweep reminds borrowers whose Approved loan ended before
// today. Loans with an unparseable end date are skipped.
func (s *ReminderService) RunOverdueSweep() {
	today := time.Now().Truncate(24 * time.Hour)
	count := 0

	for _, l := range s.loanRepo.List() {
		if l.Status != domain.LoanStatusApproved {
			continue
		}
		end, err := time.Parse("2006-01-02", l.EndDate)
		if err != nil {
			continue
		}
		if end.Before(today) {
			loan := l
			s.notify.ReturnReminder(&loan)
			count++
		}
	}

	if count > 0 {
		log.Printf("⏰ Overdue sweep sent %d reminder(s)", count)
	}
}
