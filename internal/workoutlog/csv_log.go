package workoutlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
)

// SetRecord is one logged set of one exercise on one date.
type SetRecord struct {
	Date       string  `json:"date"`
	ExerciseID string  `json:"exerciseId"`
	Exercise   string  `json:"exercise"`
	Set        int     `json:"set"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Completed  bool    `json:"completed"`
}

var csvHeader = []string{"date", "exercise_id", "exercise", "set", "reps", "weight", "completed"}

// CSVLog is the append-only workout log. Saving the same set again appends
// another row, it never updates in place; the log is an audit trail, the
// last row for a (date, exercise, set) triple is the current state.
type CSVLog struct {
	path  string
	mutex sync.Mutex
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

func (l *CSVLog) Append(ctx context.Context, records []SetRecord) error {
	_, span := tracing.GlobalTracer.Start(ctx, "workoutlog.append")
	defer span.End()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	_, err := os.Stat(l.path)
	newFile := os.IsNotExist(err)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open workout log: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if newFile {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write workout log header: %w", err)
		}
	}

	for _, r := range records {
		row := []string{
			r.Date,
			r.ExerciseID,
			r.Exercise,
			strconv.Itoa(r.Set),
			strconv.Itoa(r.Reps),
			strconv.FormatFloat(r.Weight, 'f', -1, 64),
			strconv.FormatBool(r.Completed),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write workout log row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush workout log: %w", err)
	}
	return nil
}

func (l *CSVLog) readAll() ([]SetRecord, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open workout log: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read workout log: %w", err)
	}

	var records []SetRecord
	for i, row := range rows {
		if i == 0 || len(row) != len(csvHeader) {
			continue
		}
		setNum, _ := strconv.Atoi(row[3])
		reps, _ := strconv.Atoi(row[4])
		weight, _ := strconv.ParseFloat(row[5], 64)
		completed, _ := strconv.ParseBool(row[6])
		records = append(records, SetRecord{
			Date:       row[0],
			ExerciseID: row[1],
			Exercise:   row[2],
			Set:        setNum,
			Reps:       reps,
			Weight:     weight,
			Completed:  completed,
		})
	}
	return records, nil
}

// LogFor returns all logged rows for one exercise on one date, in append
// order, duplicates included.
func (l *CSVLog) LogFor(ctx context.Context, date, exerciseID string) ([]SetRecord, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "workoutlog.logfor")
	defer span.End()

	records, err := l.readAll()
	if err != nil {
		return nil, err
	}

	var filtered []SetRecord
	for _, r := range records {
		if r.Date == date && r.ExerciseID == exerciseID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// CompletedKeys returns one key per completed set row, fed into the streak
// and leaderboard calculations.
func (l *CSVLog) CompletedKeys(ctx context.Context) ([]string, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "workoutlog.completedkeys")
	defer span.End()

	records, err := l.readAll()
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, r := range records {
		if r.Completed {
			keys = append(keys, fmt.Sprintf("%s|%s|set%d", r.ExerciseID, r.Date, r.Set))
		}
	}
	return keys, nil
}
