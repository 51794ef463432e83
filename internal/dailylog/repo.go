package dailylog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSettingsNotFound = errors.New("settings not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) SaveProfile(ctx context.Context, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.saveprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO profiles
				(user_id, age, sex, height_cm, start_weight_kg, activity_level, weekly_pace_lb, goal_weight_kg, goal_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id) DO UPDATE SET
				age = EXCLUDED.age,
				sex = EXCLUDED.sex,
				height_cm = EXCLUDED.height_cm,
				start_weight_kg = EXCLUDED.start_weight_kg,
				activity_level = EXCLUDED.activity_level,
				weekly_pace_lb = EXCLUDED.weekly_pace_lb,
				goal_weight_kg = EXCLUDED.goal_weight_kg,
				goal_date = EXCLUDED.goal_date;`,
		profile.UserID, profile.Age, profile.Sex, profile.HeightCm, profile.StartWeightKg,
		profile.ActivityLevel, profile.WeeklyPaceLb, profile.GoalWeightKg, profile.GoalDate,
	)
	return err
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.getprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Profile
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, age, sex, height_cm, start_weight_kg, activity_level, weekly_pace_lb, goal_weight_kg, goal_date
			FROM profiles WHERE user_id = $1;`,
		userID,
	).Scan(
		&p.UserID, &p.Age, &p.Sex, &p.HeightCm, &p.StartWeightKg,
		&p.ActivityLevel, &p.WeeklyPaceLb, &p.GoalWeightKg, &p.GoalDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SaveSettings(ctx context.Context, userID string, settings Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.savesettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO settings (user_id, macro_split_json) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET macro_split_json = EXCLUDED.macro_split_json;`,
		userID, string(payload),
	)
	return err
}

func (r *Repo) GetSettings(ctx context.Context, userID string) (_ Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.getsettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var payload string
	err = r.db.QueryRow(
		ctx,
		`SELECT macro_split_json FROM settings WHERE user_id = $1;`,
		userID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}

// SaveDailyLog upserts one day's check-in. The second write for the same
// (user, date) replaces the first, there is never more than one row per day.
func (r *Repo) SaveDailyLog(ctx context.Context, dailyLog DailyLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	net := dailyLog.CalIn - dailyLog.CalOut

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO daily_logs
				(user_id, date, weight_kg, water_l, cal_in, cal_out, net_kcal,
				waist_in, hips_in, energy_1_10, notes, photo_path, on_target_flag)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (user_id, date) DO UPDATE SET
				weight_kg = EXCLUDED.weight_kg,
				water_l = EXCLUDED.water_l,
				cal_in = EXCLUDED.cal_in,
				cal_out = EXCLUDED.cal_out,
				net_kcal = EXCLUDED.net_kcal,
				waist_in = EXCLUDED.waist_in,
				hips_in = EXCLUDED.hips_in,
				energy_1_10 = EXCLUDED.energy_1_10,
				notes = EXCLUDED.notes,
				photo_path = EXCLUDED.photo_path,
				on_target_flag = EXCLUDED.on_target_flag;`,
		dailyLog.UserID, dailyLog.Date, dailyLog.WeightKg, dailyLog.WaterL,
		dailyLog.CalIn, dailyLog.CalOut, net,
		dailyLog.WaistIn, dailyLog.HipsIn, dailyLog.Energy1To10,
		dailyLog.Notes, dailyLog.PhotoPath, dailyLog.OnTargetFlag,
	)
	return err
}

func (r *Repo) GetLogs(ctx context.Context, userID, start, end string) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.getlogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, weight_kg, water_l, cal_in, cal_out, net_kcal,
				waist_in, hips_in, energy_1_10, notes, photo_path, on_target_flag
			FROM daily_logs
			WHERE user_id = $1 AND date >= $2 AND date <= $3
			ORDER BY date;`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []DailyLog
	for rows.Next() {
		var l DailyLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Date, &l.WeightKg, &l.WaterL,
			&l.CalIn, &l.CalOut, &l.NetKcal,
			&l.WaistIn, &l.HipsIn, &l.Energy1To10,
			&l.Notes, &l.PhotoPath, &l.OnTargetFlag,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *Repo) DeleteAllUserData(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.deletealluserdata")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, query := range []string{
		`DELETE FROM daily_logs WHERE user_id = $1;`,
		`DELETE FROM profiles WHERE user_id = $1;`,
		`DELETE FROM settings WHERE user_id = $1;`,
	} {
		if _, err = r.db.Exec(ctx, query, userID); err != nil {
			return err
		}
	}
	return nil
}

// ExportLogsCSV renders every stored daily log of the user as CSV.
func ExportLogsCSV(logs []DailyLog) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"id", "user_id", "date", "weight_kg", "water_l", "cal_in", "cal_out",
		"net_kcal", "waist_in", "hips_in", "energy_1_10", "notes", "photo_path", "on_target_flag",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, l := range logs {
		row := []string{
			strconv.Itoa(l.ID), l.UserID, l.Date,
			strconv.FormatFloat(l.WeightKg, 'f', -1, 64),
			strconv.FormatFloat(l.WaterL, 'f', -1, 64),
			strconv.Itoa(l.CalIn), strconv.Itoa(l.CalOut), strconv.Itoa(l.NetKcal),
			strconv.FormatFloat(l.WaistIn, 'f', -1, 64),
			strconv.FormatFloat(l.HipsIn, 'f', -1, 64),
			strconv.Itoa(l.Energy1To10), l.Notes, l.PhotoPath, l.OnTargetFlag,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
