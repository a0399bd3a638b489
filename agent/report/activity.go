package report

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DailyActivity is yesterday's illustrative activity for the morning report.
type DailyActivity struct {
	NewLeads  int
	FollowUps int
	Meetings  int
}

// WeeklyActivity backs the achievements section of the weekly summary.
type WeeklyActivity struct {
	QualifiedLeads int
	FollowUps      int
	Meetings       int
}

type ActivitySource interface {
	Daily() DailyActivity
	Weekly() WeeklyActivity
}

// RandomActivity draws counts uniformly from fixed ranges. Nothing is tracked.
type RandomActivity struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ ActivitySource = (*RandomActivity)(nil)

func NewRandomActivity(seed uint64) *RandomActivity {
	return &RandomActivity{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func NewTimeSeededActivity() *RandomActivity {
	return NewRandomActivity(uint64(time.Now().UnixNano()))
}

func (r *RandomActivity) Daily() DailyActivity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return DailyActivity{
		NewLeads:  r.between(1, 5),
		FollowUps: r.between(3, 10),
		Meetings:  r.between(1, 3),
	}
}

func (r *RandomActivity) Weekly() WeeklyActivity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return WeeklyActivity{
		QualifiedLeads: r.between(5, 14),
		FollowUps:      r.between(10, 24),
		Meetings:       r.between(3, 10),
	}
}

// between is inclusive on both ends.
func (r *RandomActivity) between(lo, hi int) int {
	return lo + r.rng.IntN(hi-lo+1)
}
