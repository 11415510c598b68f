package jobs

import (
	"context"
	"fmt"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/logger"
)

// SendUpcomingHearingReminders emails the assigned volunteer of every case
// with a court hearing coming up within the configured window.
func (jr *JobRunner) SendUpcomingHearingReminders() {
	jr.runWithRecovery("SendUpcomingHearingReminders", func() {
		ctx := context.Background()

		withinDays := jr.config.Scheduler.HearingReminderDays
		hearings, err := jr.store.CaseRepository.ListUpcomingHearings(ctx, withinDays)
		if err != nil {
			logger.Error("Failed to list upcoming hearings", "error", err)
			return
		}
		if len(hearings) == 0 {
			logger.Info("No upcoming hearings found", "within_days", withinDays)
			return
		}

		sent := 0
		for _, h := range hearings {
			c, err := jr.store.CaseRepository.GetByID(ctx, h.CaseID)
			if err != nil {
				logger.Error("Failed to load case for hearing reminder",
					"hearing_id", h.ID, "case_id", h.CaseID, "error", err)
				continue
			}
			if c.AssignedUserID == nil {
				logger.Debug("Skipping hearing reminder for unassigned case",
					"case_id", c.ID, "hearing_id", h.ID)
				continue
			}
			volunteer, err := jr.store.UserRepository.GetByID(ctx, *c.AssignedUserID)
			if err != nil {
				logger.Error("Failed to load volunteer for hearing reminder",
					"user_id", *c.AssignedUserID, "error", err)
				continue
			}
			if err := jr.store.NotificationRepository.Create(ctx, &domain.Notification{
				UserID:  volunteer.ID,
				OrgID:   c.OrgID,
				Title:   "Upcoming court hearing",
				Message: fmt.Sprintf("Case %s has a hearing on %s at %s.", c.CaseNumber, h.HearingDate, h.Location),
				Attributes: map[string]string{
					"case_id": fmt.Sprintf("%d", c.ID),
				},
			}); err != nil {
				logger.Error("Failed to create hearing notification",
					"case_id", c.ID, "hearing_id", h.ID, "error", err)
			}
			if err := jr.email.SendHearingReminder(ctx, volunteer.Email, c.CaseNumber, h.HearingDate, h.Location); err != nil {
				logger.Error("Failed to send hearing reminder",
					"case_id", c.ID, "hearing_id", h.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent hearing reminders", "hearings", len(hearings), "emails", sent)
	})
}
