package main

import (
	"context"
	"log"
	"time"

	"companion/internal/datastore"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

type DailyResetJob struct {
	Db *bun.DB
}

func NewDailyResetJob(db *bun.DB) *DailyResetJob {
	return &DailyResetJob{
		Db: db,
	}
}

func (j *DailyResetJob) Start(cronRunner *cron.Cron) {
	_, err := cronRunner.AddFunc("0 0 * * *", j.runScheduledTask)
	log.Println("Daily reset cronjob start at:", time.Now().UTC().Format("2006-01-02 15:04:05"), err)
}

// runScheduledTask zeroes the daily counters of every ledger row whose
// window started before today. The counters also reset lazily on read,
// the sweep keeps idle users from reporting stale task progress.
func (j *DailyResetJob) runScheduledTask() {
	ctx := context.Background()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	log.Println("Start resetting stale day windows ...")
	affected, err := datastore.ResetStaleDayWindows(ctx, j.Db, today)
	if err != nil {
		log.Println(err)
		return
	}
	log.Println("Day windows reset:", affected)
}
