package services

import (
	"fmt"
	"sync"
	"time"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// Releaser is the slice of the ledger the compensator needs.
type Releaser interface {
	Release(key models.InventoryKey, seats int) error
}

type releaseTask struct {
	key   models.InventoryKey
	seats int
}

// Compensator retries compensating releases that failed inline, so a
// reservation whose booking never persisted is not leaked forever.
// Retries are bounded; exhaustion is escalated as an operator-visible
// anomaly instead of looping.
type Compensator struct {
	Ledger     Releaser
	MaxRetries int
	Backoff    time.Duration

	tasks     chan releaseTask
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
}

func NewCompensator(ledger Releaser) *Compensator {
	return &Compensator{
		Ledger:     ledger,
		MaxRetries: 5,
		Backoff:    250 * time.Millisecond,
		tasks:      make(chan releaseTask, 64),
		quit:       make(chan struct{}),
	}
}

// Enqueue hands a failed release to the background worker. A full queue,
// like an enqueue after Close, is logged for manual repair rather than
// blocking the request path; neither leaves Flush waiting on a task no
// worker will take.
func (c *Compensator) Enqueue(key models.InventoryKey, seats int) {
	select {
	case <-c.quit:
		utils.LogAnomaly("compensator", "enqueue",
			fmt.Sprintf("compensator closed, %d seats on %s/%s/%s need manual release",
				seats, key.TrainNumber, key.ClassType, key.JourneyDate))
		return
	default:
	}

	c.startOnce.Do(func() { go c.loop() })
	c.wg.Add(1)
	select {
	case c.tasks <- releaseTask{key: key, seats: seats}:
	default:
		c.wg.Done()
		utils.LogAnomaly("compensator", "enqueue",
			fmt.Sprintf("queue full, %d seats on %s/%s/%s need manual release",
				seats, key.TrainNumber, key.ClassType, key.JourneyDate))
	}
}

// Flush blocks until all enqueued tasks have been processed.
func (c *Compensator) Flush() {
	c.wg.Wait()
}

// Close stops the worker after the current task. Call Flush first when
// pending releases must still be applied.
func (c *Compensator) Close() {
	c.stopOnce.Do(func() { close(c.quit) })
}

func (c *Compensator) loop() {
	for {
		select {
		case <-c.quit:
			return
		case t := <-c.tasks:
			c.process(t)
		}
	}
}

func (c *Compensator) process(t releaseTask) {
	defer c.wg.Done()
	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		if err := c.Ledger.Release(t.key, t.seats); err == nil {
			utils.LogEvent("", "compensator", "release",
				fmt.Sprintf("compensating release of %d seats on %s/%s/%s applied (attempt %d)",
					t.seats, t.key.TrainNumber, t.key.ClassType, t.key.JourneyDate, attempt))
			return
		}
		time.Sleep(c.Backoff * time.Duration(attempt))
	}
	utils.LogAnomaly("compensator", "release",
		fmt.Sprintf("giving up after %d attempts: %d seats on %s/%s/%s remain reserved without a booking",
			c.MaxRetries, t.seats, t.key.TrainNumber, t.key.ClassType, t.key.JourneyDate))
}
