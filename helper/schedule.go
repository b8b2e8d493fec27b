package helper

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

// StartDailyScheduler runs task every day at "HH:MM" in loc.
func StartDailyScheduler(loc *time.Location, at string, task func()) (gocron.Scheduler, error) {
	hour, minute, err := parseClock(at)
	if err != nil {
		return nil, err
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(task),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	s.Start()
	log.Printf("[CRON] daily job scheduled at %s %s", at, loc)
	return s, nil
}

// StartPeriodic runs task on a cron spec, skipping a run while the previous
// one is still going.
func StartPeriodic(spec string, task func()) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, task); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	c.Start()
	log.Printf("[CRON] periodic job scheduled (%s)", spec)
	return c, nil
}

func parseClock(at string) (uint, uint, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", at)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid time of day %q", at)
	}
	return uint(h), uint(m), nil
}
