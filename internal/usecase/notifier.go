package usecase

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes notifications to the logger.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) Success(message string) {
	n.Logger.WithField("notice", "success").Info(message)
}

func (n LogNotifier) Error(message string) {
	n.Logger.WithField("notice", "error").Warn(message)
}

// Notifiers forwards every notification to each of its notifiers.
type Notifiers []Notifier

func (ns Notifiers) Success(message string) {
	for _, n := range ns {
		n.Success(message)
	}
}

func (ns Notifiers) Error(message string) {
	for _, n := range ns {
		n.Error(message)
	}
}

// Notice is a notification kept for a later reader.
type Notice struct {
	Kind    string    `json:"tipo"`
	Message string    `json:"mensaje"`
	At      time.Time `json:"fecha"`
}

// NoticeBoard collects notifications until they are drained, keeping the
// most recent ones only.
type NoticeBoard struct {
	mu      sync.Mutex
	notices []Notice
	max     int
}

func NewNoticeBoard(max int) *NoticeBoard {
	if max <= 0 {
		max = 20
	}
	return &NoticeBoard{max: max}
}

func (b *NoticeBoard) Success(message string) {
	b.add("success", message)
}

func (b *NoticeBoard) Error(message string) {
	b.add("error", message)
}

func (b *NoticeBoard) add(kind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, Notice{Kind: kind, Message: message, At: time.Now()})
	if len(b.notices) > b.max {
		b.notices = b.notices[len(b.notices)-b.max:]
	}
}

// Drain returns the pending notices and forgets them.
func (b *NoticeBoard) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
