package cron

import (
	"context"
	"time"
)

// ExpiredLeaveSweeper deletes unapproved leave requests whose period has passed.
type ExpiredLeaveSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type LeaveJobs struct {
	sweeper  ExpiredLeaveSweeper
	interval time.Duration
}

func NewLeaveJobs(sweeper ExpiredLeaveSweeper, interval time.Duration) *LeaveJobs {
	return &LeaveJobs{sweeper: sweeper, interval: interval}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "sweep_expired_leave_requests",
		Interval: j.interval,
		Timeout:  time.Minute,
		Fn:       j.SweepExpiredLeaveRequests,
	})
}

func (j *LeaveJobs) SweepExpiredLeaveRequests(ctx context.Context) error {
	_, err := j.sweeper.SweepExpired(ctx)
	return err
}
