package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartNewsFeedJob imports feedURL every interval. It is the only background
// job and it only ever inserts news posts.
func StartNewsFeedJob(importer *NewsImporter, feedURL, userID string, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := importer.Import(ctx, feedURL, userID); err != nil {
				log.Printf("[feed] scheduled import failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("[feed] importing %s every %s", feedURL, interval)
	return sched, nil
}
