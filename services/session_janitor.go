package services

import (
	"context"
	"time"

	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
)

// SessionJanitor periodically drops revocations of tokens that have expired
// anyway. Only needed for the database-backed session store; Redis expires
// its keys itself.
type SessionJanitor struct {
	repo     *repository.SessionRepository
	Interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

func NewSessionJanitor(repo *repository.SessionRepository) *SessionJanitor {
	return &SessionJanitor{
		repo:     repo,
		Interval: 10 * time.Minute,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *SessionJanitor) Start() {
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.RunOnce(context.Background())
			case <-j.stopChan:
				return
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight purge to finish.
func (j *SessionJanitor) Stop() {
	close(j.stopChan)
	<-j.done
}

func (j *SessionJanitor) RunOnce(ctx context.Context) int64 {
	purged, err := j.repo.PurgeExpired(ctx, time.Now())
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("purging expired sessions failed")
		return 0
	}
	if purged > 0 {
		utils.InfoLogger.Printf("Purged %d expired session revocations", purged)
	}
	return purged
}
