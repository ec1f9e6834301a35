package service

import (
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// Notifier is the bounded per-session queue of transient notices. When full the
// oldest notice is dropped.
type Notifier struct {
	mu      sync.Mutex
	max     int
	notices []models.Notice
	now     func() time.Time
}

func NewNotifier(max int) *Notifier {
	if max < 1 {
		max = 1
	}

	return &Notifier{max: max, now: time.Now}
}

func (n *Notifier) Push(level models.NoticeLevel, message string) {
	if n == nil || message == "" {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices = append(n.notices, models.Notice{Level: level, Message: message, CreatedAt: n.now()})
	if over := len(n.notices) - n.max; over > 0 {
		n.notices = n.notices[over:]
	}
}

func (n *Notifier) Success(message string) { n.Push(models.NoticeSuccess, message) }

func (n *Notifier) Error(message string) { n.Push(models.NoticeError, message) }

// Drain returns the pending notices oldest first and empties the queue.
func (n *Notifier) Drain() []models.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.notices
	if out == nil {
		out = []models.Notice{}
	}
	n.notices = nil

	return out
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.notices)
}
