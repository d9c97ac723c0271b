package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	skillColumns     = `id, participant_id, name, category, proficiency, certified, acquired_at, created_at`
	insertSkillQuery = `
INSERT INTO skills(id, participant_id, name, category, proficiency, certified, acquired_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + skillColumns
	selectSkillsQuery = `SELECT ` + skillColumns + ` FROM skills WHERE participant_id=$1 ORDER BY created_at, name`
	deleteSkillQuery  = `DELETE FROM skills WHERE participant_id=$1 AND id=$2`
)

func scanSkill(row pgx.Row) (entities.Skill, error) {
	var s entities.Skill
	err := row.Scan(&s.ID, &s.ParticipantID, &s.Name, &s.Category, &s.Proficiency, &s.Certified, &s.AcquiredAt, &s.CreatedAt)
	return s, err
}

// CreateSkill attaches a skill to a participant.
func (p *Postgres) CreateSkill(ctx context.Context, in entities.Skill) (*entities.Skill, error) {
	res, err := scanSkill(p.db.QueryRow(ctx, insertSkillQuery,
		in.ID, in.ParticipantID, in.Name, in.Category, in.Proficiency, in.Certified, in.AcquiredAt))
	if err != nil {
		return nil, fmt.Errorf("insert skill: %w", mapWriteError(err, nil))
	}
	return &res, nil
}

// ListSkills returns every skill of a participant.
func (p *Postgres) ListSkills(ctx context.Context, participantID string) ([]entities.Skill, error) {
	if _, err := p.GetParticipant(ctx, participantID); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, selectSkillsQuery, participantID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Skill, 0)
	for rows.Next() {
		item, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return res, nil
}

// DeleteSkill removes one skill of a participant.
func (p *Postgres) DeleteSkill(ctx context.Context, participantID, skillID string) error {
	tag, err := p.db.Exec(ctx, deleteSkillQuery, participantID, skillID)
	if err != nil {
		return fmt.Errorf("delete skill: %w", mapUpdateError(err, entities.ErrSkillNotFound, nil))
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrSkillNotFound
	}
	return nil
}
