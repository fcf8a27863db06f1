// Command main recomputes the popular hashtag ranking. It is intended to
// be run on a schedule (twice daily in production) by cron or a Kubernetes
// CronJob.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"deckvault/internal/config"
	"deckvault/internal/database"
	"deckvault/internal/repository"
	"deckvault/internal/service"
)

func main() {
	periodDays := flag.Int("period-days", service.DefaultHashtagPeriodDays, "Aggregation window in days")
	limit := flag.Int("limit", service.DefaultHashtagLimit, "Number of hashtags to keep")
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the run after this long")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc := service.NewHashtagService(repository.NewHashtagRepository(db))
	summary, err := svc.Aggregate(ctx, *periodDays, *limit)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}

	log.Printf("aggregated %d hashtags for the %d-day window", len(summary.Hashtags), summary.PeriodDays)
	for i, tag := range summary.Hashtags {
		if i >= 10 {
			break
		}
		log.Printf("%2d. %s (%d decks)", i+1, tag.Hashtag, tag.Count)
	}
}
