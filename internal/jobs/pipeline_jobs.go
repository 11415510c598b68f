package jobs

import (
	"context"
	"fmt"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/logger"
)

// SendStalePipelineReminders emails each organization's admins a digest of
// volunteer candidates that have been sitting in an in-progress pipeline
// stage for too long.
func (jr *JobRunner) SendStalePipelineReminders() {
	jr.runWithRecovery("SendStalePipelineReminders", func() {
		ctx := context.Background()

		staleAfter := jr.config.Pipeline.StaleAfterDays
		stages := []domain.PipelineStatus{
			domain.PipelineStatusBackgroundCheck,
			domain.PipelineStatusTraining,
		}

		candidates, err := jr.store.VolunteerRepository.ListStale(ctx, stages, staleAfter)
		if err != nil {
			logger.Error("Failed to list stale pipeline candidates", "error", err)
			return
		}
		if len(candidates) == 0 {
			logger.Info("No stale pipeline candidates found")
			return
		}

		// Group by organization so each admin gets one digest.
		byOrg := make(map[int32][]string)
		for _, cand := range candidates {
			byOrg[cand.OrgID] = append(byOrg[cand.OrgID], cand.Name)
		}

		sent := 0
		for orgID, names := range byOrg {
			org, err := jr.store.OrganizationRepository.GetByID(ctx, orgID)
			if err != nil {
				logger.Error("Failed to load organization for reminder", "org_id", orgID, "error", err)
				continue
			}
			admins, err := jr.store.UserRepository.ListAdminsByOrg(ctx, orgID)
			if err != nil {
				logger.Error("Failed to list admins for reminder", "org_id", orgID, "error", err)
				continue
			}
			for _, admin := range admins {
				if err := jr.store.NotificationRepository.Create(ctx, &domain.Notification{
					UserID:  admin.ID,
					OrgID:   orgID,
					Title:   "Volunteer applications awaiting action",
					Message: fmt.Sprintf("%d candidate(s) have been waiting in the onboarding pipeline for over %d days.", len(names), staleAfter),
				}); err != nil {
					logger.Error("Failed to create stale pipeline notification",
						"org_id", orgID, "admin", admin.Email, "error", err)
				}
				if err := jr.email.SendStalePipelineReminder(ctx, admin.Email, org.Name, names); err != nil {
					logger.Error("Failed to send stale pipeline reminder",
						"org_id", orgID, "admin", admin.Email, "error", err)
					continue
				}
				sent++
			}
		}

		logger.Info("Sent stale pipeline reminders",
			"organizations", len(byOrg),
			"candidates", len(candidates),
			"emails", sent)
	})
}
