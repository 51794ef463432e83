package dailylog

import (
	"context"
	"sort"
)

type repoMock struct {
	profiles map[string]Profile
	settings map[string]Settings
	logs     map[string]map[string]DailyLog // user id -> date -> log
	nextID   int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		profiles: make(map[string]Profile),
		settings: make(map[string]Settings),
		logs:     make(map[string]map[string]DailyLog),
		nextID:   1,
	}
}

func (r *repoMock) SaveProfile(_ context.Context, profile Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *repoMock) GetProfile(_ context.Context, userID string) (*Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

func (r *repoMock) SaveSettings(_ context.Context, userID string, settings Settings) error {
	r.settings[userID] = settings
	return nil
}

func (r *repoMock) GetSettings(_ context.Context, userID string) (Settings, error) {
	settings, ok := r.settings[userID]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return settings, nil
}

func (r *repoMock) SaveDailyLog(_ context.Context, dailyLog DailyLog) error {
	userLogs, ok := r.logs[dailyLog.UserID]
	if !ok {
		userLogs = make(map[string]DailyLog)
		r.logs[dailyLog.UserID] = userLogs
	}

	dailyLog.NetKcal = dailyLog.CalIn - dailyLog.CalOut
	if existing, ok := userLogs[dailyLog.Date]; ok {
		dailyLog.ID = existing.ID
	} else {
		dailyLog.ID = r.nextID
		r.nextID++
	}
	userLogs[dailyLog.Date] = dailyLog
	return nil
}

func (r *repoMock) GetLogs(_ context.Context, userID, start, end string) ([]DailyLog, error) {
	var logs []DailyLog
	for date, l := range r.logs[userID] {
		if date >= start && date <= end {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
	return logs, nil
}

func (r *repoMock) DeleteAllUserData(_ context.Context, userID string) error {
	delete(r.logs, userID)
	delete(r.profiles, userID)
	delete(r.settings, userID)
	return nil
}
