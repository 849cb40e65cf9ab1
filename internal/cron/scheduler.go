package cron

import (
	"context"
	"log"

	"github.com/LuthandoGubevu/tutorhub/internal/services"

	"github.com/robfig/cron/v3"
)

// StartJobs schedules the suggestion backfill job. spec is a cron expression;
// the returned cron can be stopped on shutdown.
func StartJobs(spec string, submissionService services.SubmissionService) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		log.Println("Running suggestion backfill job...")

		filled, err := submissionService.BackfillSuggestions(context.Background())
		if err != nil {
			log.Println("Suggestion backfill failed:", err)
			return
		}

		log.Printf("Suggestion backfill filled %d submissions", filled)
	}); err != nil {
		log.Println("Invalid backfill cron spec:", err)
		return c
	}

	c.Start()
	return c
}
