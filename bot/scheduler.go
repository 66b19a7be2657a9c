package bot

import (
	"log"
	"sync"
	"time"
)

// Scheduler runs the bot's periodic housekeeping.
type Scheduler struct {
	bot            *Bot
	done           chan struct{}
	wg             sync.WaitGroup
	cooldownTicker *time.Ticker
}

// NewScheduler creates a new scheduler.
func NewScheduler(bot *Bot) *Scheduler {
	return &Scheduler{
		bot:  bot,
		done: make(chan struct{}),
	}
}

// Start begins all scheduled tasks.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.startCooldownCleanup()
}

// Stop terminates all scheduled tasks gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) startCooldownCleanup() {
	defer s.wg.Done()

	s.cooldownTicker = time.NewTicker(10 * time.Minute)
	defer s.cooldownTicker.Stop()

	for {
		select {
		case <-s.cooldownTicker.C:
			s.bot.CleanupCooldowns()
		case <-s.done:
			return
		}
	}
}
