package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

const selectColumns = `seq, id, user_id, user_name, game_id, game_name, school_id, school_name, grade_level, subject,
	start_time, end_time, total_time_spent, score, max_score, percentage_score, completed, passed, progress,
	interactions, created_at, updated_at`

// recordRow is the game_analytics table row. Optional values are nullable columns and
// interactions are stored as JSON text.
type recordRow struct {
	Seq             int64           `db:"seq"`
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	UserName        string          `db:"user_name"`
	GameID          string          `db:"game_id"`
	GameName        string          `db:"game_name"`
	SchoolID        string          `db:"school_id"`
	SchoolName      string          `db:"school_name"`
	GradeLevel      string          `db:"grade_level"`
	Subject         string          `db:"subject"`
	StartTime       time.Time       `db:"start_time"`
	EndTime         sql.NullTime    `db:"end_time"`
	TotalTimeSpent  string          `db:"total_time_spent"`
	Score           sql.NullFloat64 `db:"score"`
	MaxScore        sql.NullFloat64 `db:"max_score"`
	PercentageScore sql.NullFloat64 `db:"percentage_score"`
	Completed       sql.NullBool    `db:"completed"`
	Passed          sql.NullBool    `db:"passed"`
	Progress        sql.NullFloat64 `db:"progress"`
	Interactions    sql.NullString  `db:"interactions"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// DBRepository implements Repository using MySQL or SQLite through sqlx.
type DBRepository struct {
	db    *sqlx.DB
	clock analytics.Clock
}

// NewDBRepository creates a new DBRepository. A nil clock uses the system clock.
func NewDBRepository(db *sqlx.DB, clock analytics.Clock) *DBRepository {
	if clock == nil {
		clock = analytics.SystemClock
	}
	return &DBRepository{db: db, clock: clock}
}

// Save inserts or merges record in a single transaction.
func (r *DBRepository) Save(ctx context.Context, record analytics.GameAnalytics) (analytics.GameAnalytics, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return analytics.GameAnalytics{}, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.clock.Now()
	var existing recordRow
	err = tx.GetContext(ctx, &existing, "SELECT "+selectColumns+" FROM game_analytics WHERE id = ?", record.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		if record.UpdatedAt.IsZero() {
			record.UpdatedAt = now
		}
		if err := r.insert(ctx, tx, record); err != nil {
			return analytics.GameAnalytics{}, err
		}
	case err != nil:
		return analytics.GameAnalytics{}, fmt.Errorf("tx.GetContext(game_analytics) > %w", err)
	default:
		stored, err := fromRow(existing)
		if err != nil {
			return analytics.GameAnalytics{}, err
		}
		record = analytics.Overlay(stored, record)
		record.UpdatedAt = now
		if err := r.update(ctx, tx, record); err != nil {
			return analytics.GameAnalytics{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return analytics.GameAnalytics{}, fmt.Errorf("tx.Commit() > %w", err)
	}
	return inUTC(record), nil
}

func (r *DBRepository) insert(ctx context.Context, tx *sqlx.Tx, record analytics.GameAnalytics) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO game_analytics (id, user_id, user_name, game_id, game_name, school_id, school_name, grade_level, subject,
		start_time, end_time, total_time_spent, score, max_score, percentage_score, completed, passed, progress,
		interactions, created_at, updated_at)
		VALUES (:id, :user_id, :user_name, :game_id, :game_name, :school_id, :school_name, :grade_level, :subject,
		:start_time, :end_time, :total_time_spent, :score, :max_score, :percentage_score, :completed, :passed, :progress,
		:interactions, :created_at, :updated_at)`, row); err != nil {
		return fmt.Errorf("tx.NamedExecContext(insert game_analytics) > %w", err)
	}
	return nil
}

func (r *DBRepository) update(ctx context.Context, tx *sqlx.Tx, record analytics.GameAnalytics) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	if _, err := tx.NamedExecContext(ctx,
		`UPDATE game_analytics SET user_id = :user_id, user_name = :user_name, game_id = :game_id, game_name = :game_name,
		school_id = :school_id, school_name = :school_name, grade_level = :grade_level, subject = :subject,
		start_time = :start_time, end_time = :end_time, total_time_spent = :total_time_spent,
		score = :score, max_score = :max_score, percentage_score = :percentage_score,
		completed = :completed, passed = :passed, progress = :progress, interactions = :interactions,
		created_at = :created_at, updated_at = :updated_at
		WHERE id = :id`, row); err != nil {
		return fmt.Errorf("tx.NamedExecContext(update game_analytics) > %w", err)
	}
	return nil
}

// FindByID returns the record with id, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id string) (*analytics.GameAnalytics, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, "SELECT "+selectColumns+" FROM game_analytics WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(game_analytics) > %w", err)
	}
	record, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *DBRepository) FindByUser(ctx context.Context, userID string) ([]analytics.GameAnalytics, error) {
	return r.selectWhere(ctx, "user_id = ?", userID)
}

func (r *DBRepository) FindByGame(ctx context.Context, gameID string) ([]analytics.GameAnalytics, error) {
	return r.selectWhere(ctx, "game_id = ?", gameID)
}

// FindBySchool matches nothing for an empty school id, since records without a school store ''.
func (r *DBRepository) FindBySchool(ctx context.Context, schoolID string) ([]analytics.GameAnalytics, error) {
	if schoolID == "" {
		return []analytics.GameAnalytics{}, nil
	}
	return r.selectWhere(ctx, "school_id = ?", schoolID)
}

func (r *DBRepository) FindByGrade(ctx context.Context, gradeLevel string) ([]analytics.GameAnalytics, error) {
	if gradeLevel == "" {
		return []analytics.GameAnalytics{}, nil
	}
	return r.selectWhere(ctx, "grade_level = ?", gradeLevel)
}

func (r *DBRepository) FindBySubject(ctx context.Context, subject string) ([]analytics.GameAnalytics, error) {
	if subject == "" {
		return []analytics.GameAnalytics{}, nil
	}
	return r.selectWhere(ctx, "subject = ?", subject)
}

func (r *DBRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]analytics.GameAnalytics, error) {
	return r.selectWhere(ctx, "created_at >= ? AND created_at <= ?", start.UTC(), end.UTC())
}

func (r *DBRepository) FindAll(ctx context.Context) ([]analytics.GameAnalytics, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+selectColumns+" FROM game_analytics ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(game_analytics) > %w", err)
	}
	return fromRows(rows)
}

func (r *DBRepository) selectWhere(ctx context.Context, condition string, args ...any) ([]analytics.GameAnalytics, error) {
	var rows []recordRow
	query := "SELECT " + selectColumns + " FROM game_analytics WHERE " + condition + " ORDER BY seq"
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(game_analytics where %s) > %w", condition, err)
	}
	return fromRows(rows)
}

// inUTC converts the timestamps of record to UTC. go-sqlite3 binds a time as text in its own zone,
// so created_at only compares in instant order when every stored value shares one zone.
func inUTC(record analytics.GameAnalytics) analytics.GameAnalytics {
	record.StartTime = record.StartTime.UTC()
	if record.EndTime != nil {
		endTime := record.EndTime.UTC()
		record.EndTime = &endTime
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record
}

func toRow(record analytics.GameAnalytics) (recordRow, error) {
	record = inUTC(record)
	row := recordRow{
		ID:              record.ID,
		UserID:          record.UserID,
		UserName:        record.UserName,
		GameID:          record.GameID,
		GameName:        record.GameName,
		SchoolID:        record.SchoolID,
		SchoolName:      record.SchoolName,
		GradeLevel:      record.GradeLevel,
		Subject:         record.Subject,
		StartTime:       record.StartTime,
		TotalTimeSpent:  record.TotalTimeSpent,
		Score:           nullFloat(record.Score),
		MaxScore:        nullFloat(record.MaxScore),
		PercentageScore: nullFloat(record.PercentageScore),
		Completed:       nullBool(record.Completed),
		Passed:          nullBool(record.Passed),
		Progress:        nullFloat(record.Progress),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	if record.EndTime != nil {
		row.EndTime = sql.NullTime{Time: *record.EndTime, Valid: true}
	}
	if record.Interactions != nil {
		content, err := json.Marshal(record.Interactions)
		if err != nil {
			return recordRow{}, fmt.Errorf("json.Marshal(interactions) > %w", err)
		}
		row.Interactions = sql.NullString{String: string(content), Valid: true}
	}
	return row, nil
}

func fromRow(row recordRow) (analytics.GameAnalytics, error) {
	record := analytics.GameAnalytics{
		ID:              row.ID,
		UserID:          row.UserID,
		UserName:        row.UserName,
		GameID:          row.GameID,
		GameName:        row.GameName,
		SchoolID:        row.SchoolID,
		SchoolName:      row.SchoolName,
		GradeLevel:      row.GradeLevel,
		Subject:         row.Subject,
		StartTime:       row.StartTime,
		TotalTimeSpent:  row.TotalTimeSpent,
		Score:           floatPtr(row.Score),
		MaxScore:        floatPtr(row.MaxScore),
		PercentageScore: floatPtr(row.PercentageScore),
		Completed:       boolPtr(row.Completed),
		Passed:          boolPtr(row.Passed),
		Progress:        floatPtr(row.Progress),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.EndTime.Valid {
		endTime := row.EndTime.Time
		record.EndTime = &endTime
	}
	if row.Interactions.Valid {
		if err := json.Unmarshal([]byte(row.Interactions.String), &record.Interactions); err != nil {
			return analytics.GameAnalytics{}, fmt.Errorf("json.Unmarshal(interactions of %s) > %w", row.ID, err)
		}
	}
	return record, nil
}

func fromRows(rows []recordRow) ([]analytics.GameAnalytics, error) {
	records := make([]analytics.GameAnalytics, 0, len(rows))
	for _, row := range rows {
		record, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return analytics.Float64(v.Float64)
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return analytics.Bool(v.Bool)
}
