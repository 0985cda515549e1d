package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/habit-cli/internal/domain"
)

// SnapshotKey names the single persisted record. It matches the key the
// browser dashboard used, so its exports can be imported unchanged.
const SnapshotKey = "habit_dashboard_v2"

// snapshotRecord is the persisted shape of the habit log.
type snapshotRecord struct {
	Habits          *[]habitRecord    `json:"habits"`
	Challenges      []challengeRecord `json:"challenges"`
	PerfectDays     int               `json:"perfectDays"`
	Streak          int               `json:"streak"`
	LastPerfectDate *string           `json:"lastPerfectDate"`
}

type habitRecord struct {
	ID           recordID        `json:"id"`
	Name         *string         `json:"name"`
	CheckedDates map[string]bool `json:"checkedDates"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
}

type challengeRecord struct {
	ID   recordID `json:"id"`
	Name string   `json:"name"`
}

// recordID accepts both string ids and the numeric timestamps older
// snapshots used, and always encodes as a string.
type recordID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// EncodeSnapshot serializes the log as the snapshot JSON record.
func EncodeSnapshot(log *domain.HabitLog) ([]byte, error) {
	habits := make([]habitRecord, 0, len(log.Habits))
	for _, h := range log.Habits {
		name := h.Name
		dates := make(map[string]bool, len(h.Completion))
		for day, done := range h.Completion {
			dates[string(day)] = done
		}
		rec := habitRecord{
			ID:           recordID(h.ID),
			Name:         &name,
			CheckedDates: dates,
		}
		if !h.CreatedAt.IsZero() {
			created := h.CreatedAt
			rec.CreatedAt = &created
		}
		habits = append(habits, rec)
	}

	challenges := make([]challengeRecord, 0, len(log.Challenges))
	for _, c := range log.Challenges {
		challenges = append(challenges, challengeRecord{ID: recordID(c.ID), Name: c.Name})
	}

	rec := snapshotRecord{
		Habits:      &habits,
		Challenges:  challenges,
		PerfectDays: log.PerfectDays,
		Streak:      log.Streak,
	}
	if !log.LastPerfectDate.IsZero() {
		last := string(log.LastPerfectDate)
		rec.LastPerfectDate = &last
	}

	return json.Marshal(rec)
}

// DecodeSnapshot parses a snapshot record. Records that are not JSON or
// have no habits collection fail with domain.ErrCorruptedState. Habits
// without an id or name and day keys that are not calendar dates are dropped.
func DecodeSnapshot(data []byte) (*domain.HabitLog, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptedState, err)
	}
	if rec.Habits == nil {
		return nil, fmt.Errorf("%w: missing habits collection", domain.ErrCorruptedState)
	}

	log := domain.NewHabitLog()
	for _, hr := range *rec.Habits {
		if hr.ID == "" || hr.Name == nil || strings.TrimSpace(*hr.Name) == "" {
			continue
		}
		h := &domain.Habit{
			ID:         string(hr.ID),
			Name:       strings.TrimSpace(*hr.Name),
			Completion: make(map[domain.DayKey]bool, len(hr.CheckedDates)),
		}
		if hr.CreatedAt != nil {
			h.CreatedAt = *hr.CreatedAt
		}
		for raw, done := range hr.CheckedDates {
			day, err := domain.ParseDayKey(raw)
			if err != nil {
				continue
			}
			h.Completion[day] = done
		}
		log.Habits = append(log.Habits, h)
	}

	for _, cr := range rec.Challenges {
		name := strings.TrimSpace(cr.Name)
		if cr.ID == "" || name == "" {
			continue
		}
		log.Challenges = append(log.Challenges, domain.Challenge{ID: string(cr.ID), Name: name})
	}

	log.PerfectDays = max(rec.PerfectDays, 0)
	log.Streak = max(rec.Streak, 0)
	if rec.LastPerfectDate != nil {
		if day, err := domain.ParseDayKey(*rec.LastPerfectDate); err == nil {
			log.LastPerfectDate = day
		}
	}

	return log, nil
}
