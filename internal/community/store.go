package community

import (
	"sync"
	"time"
)

// Challenges is the fixed set of weekly challenges users can join.
var Challenges = []string{
	"8k steps/day",
	"3 workouts",
	"2 core days",
	"5L water challenge",
	"No skip week",
}

type ChatMessage struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Membership struct {
	Challenge   string `json:"challenge"`
	DisplayName string `json:"display_name"`
}

type LeaderboardRow struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Streak string `json:"streak"`
}

// Store holds the community state in memory. Multi-user sync is stubbed for
// now, ready for a real backend later.
type Store struct {
	mutex      sync.RWMutex
	membership Membership
	chat       []ChatMessage
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		now: time.Now,
	}
}

func (s *Store) Join(challenge, displayName string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.membership = Membership{
		Challenge:   challenge,
		DisplayName: displayName,
	}
}

func (s *Store) Membership() Membership {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.membership
}

func (s *Store) AddChatMessage(name, content string) ChatMessage {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	message := ChatMessage{
		Role:      "user",
		Name:      name,
		Content:   content,
		Timestamp: s.now().Format(time.RFC3339),
	}
	s.chat = append(s.chat, message)
	return message
}

// LastChat returns up to limit most recent messages, oldest first.
func (s *Store) LastChat(limit int) []ChatMessage {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	start := len(s.chat) - limit
	if start < 0 {
		start = 0
	}
	messages := make([]ChatMessage, len(s.chat)-start)
	copy(messages, s.chat[start:])
	return messages
}

// Leaderboard builds the local demo leaderboard: the user's row computed
// from their completed sets, followed by seeded demo rows.
func Leaderboard(displayName string, completedCount int) []LeaderboardRow {
	if displayName == "" {
		displayName = "You"
	}
	return []LeaderboardRow{
		{Name: displayName, Points: completedCount * 10, Streak: "🔥 7 days"},
		{Name: "Sarah M.", Points: 280, Streak: "🔥 14 days"},
		{Name: "Jessica R.", Points: 220, Streak: "🔥 5 days"},
		{Name: "Emma L.", Points: 190, Streak: "🔥 3 days"},
	}
}

func ValidChallenge(challenge string) bool {
	for _, c := range Challenges {
		if c == challenge {
			return true
		}
	}
	return false
}
