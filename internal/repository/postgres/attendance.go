package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	activityExistsQuery   = `SELECT EXISTS(SELECT 1 FROM activities WHERE id=$1)`
	upsertAttendanceQuery = `
INSERT INTO activity_participants(activity_id, participant_id, attended)
VALUES ($1,$2,$3)
ON CONFLICT (activity_id, participant_id) DO UPDATE
SET attended=EXCLUDED.attended, recorded_at=NOW()`
	deleteAttendanceQuery = `DELETE FROM activity_participants WHERE activity_id=$1 AND participant_id=$2`
	selectAttendanceQuery = `
SELECT ap.activity_id, ap.participant_id, p.first_name, p.last_name, ap.attended,
       p.gender, p.age, p.setting, p.is_pwd, p.employment_status, ap.recorded_at
FROM activity_participants ap
JOIN participants p ON p.id = ap.participant_id
WHERE ap.activity_id=$1
ORDER BY p.last_name, p.first_name`
)

// RecordAttendance adds participants to an activity register or updates
// their attended flag. The whole batch fails if any participant is unknown.
func (p *Postgres) RecordAttendance(ctx context.Context, activityID string, participantIDs []string, attended bool) (int, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, activityExistsQuery, activityID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("activity lookup: %w", mapReadError(err, entities.ErrActivityNotFound))
	}
	if !exists {
		return 0, entities.ErrActivityNotFound
	}

	recorded := 0
	for _, id := range participantIDs {
		if _, err := tx.Exec(ctx, upsertAttendanceQuery, activityID, id, attended); err != nil {
			if isForeignKey(err) {
				return 0, fmt.Errorf("%w: participant %s", entities.ErrParticipantNotFound, id)
			}
			return 0, fmt.Errorf("record attendance: %w", mapWriteError(err, nil))
		}
		recorded++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	p.log.Infow("attendance recorded", "activity_id", activityID, "participants", recorded, "attended", attended)
	return recorded, nil
}

// RemoveAttendance takes a participant off an activity register.
func (p *Postgres) RemoveAttendance(ctx context.Context, activityID, participantID string) error {
	tag, err := p.db.Exec(ctx, deleteAttendanceQuery, activityID, participantID)
	if err != nil {
		return fmt.Errorf("remove attendance: %w", mapUpdateError(err, entities.ErrAttendanceNotFound, nil))
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrAttendanceNotFound
	}
	return nil
}

// ListAttendance returns the register of an activity with participant demographics.
func (p *Postgres) ListAttendance(ctx context.Context, activityID string) ([]entities.AttendanceRecord, error) {
	if _, err := p.GetActivity(ctx, activityID); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, selectAttendanceQuery, activityID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	res := make([]entities.AttendanceRecord, 0)
	for rows.Next() {
		var (
			r           entities.AttendanceRecord
			first, last string
		)
		if err := rows.Scan(&r.ActivityID, &r.ParticipantID, &first, &last, &r.Attended,
			&r.Gender, &r.Age, &r.Setting, &r.IsPWD, &r.EmploymentStatus, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		r.ParticipantName = entities.Participant{FirstName: first, LastName: last}.FullName()
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return res, nil
}
