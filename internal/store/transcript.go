package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type transcriptRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *transcriptRepo) Save(ctx context.Context, data TranscriptData) (int, error) {
	questions, err := json.Marshal(nonNil(data.Questions))
	if err != nil {
		return 0, fmt.Errorf("marshal questions: %w", err)
	}
	responses, err := json.Marshal(nonNil(data.Responses))
	if err != nil {
		return 0, fmt.Errorf("marshal responses: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	ended := data.EndedAt
	if ended.IsZero() {
		ended = time.Now()
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO interview_transcripts
		(sequence, session_id, job_category, job_skill, technical_language,
		 questions, responses, feedback, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		data.SessionID,
		data.JobCategory,
		data.JobSkill,
		data.TechnicalLanguage,
		string(questions),
		string(responses),
		data.Feedback,
		data.StartedAt.UTC().UnixMilli(),
		ended.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("save transcript: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transcript id: %w", err)
	}
	return int(id), nil
}

const transcriptColumns = `id, sequence, session_id, job_category, job_skill, technical_language,
	questions, responses, feedback, started_at, ended_at`

func (r *transcriptRepo) List(ctx context.Context, limit int) ([]Transcript, error) {
	q := "SELECT " + transcriptColumns + " FROM interview_transcripts ORDER BY sequence DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	var out []Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *transcriptRepo) Get(ctx context.Context, id int) (*Transcript, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transcriptColumns+" FROM interview_transcripts WHERE id = ?", id)
	t, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func scanTranscript(row rowScanner) (*Transcript, error) {
	var (
		t                    Transcript
		questions, responses string
		started, ended       int64
	)
	err := row.Scan(&t.ID, &t.Sequence, &t.SessionID, &t.JobCategory, &t.JobSkill,
		&t.TechnicalLanguage, &questions, &responses, &t.Feedback, &started, &ended)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan transcript: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &t.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := json.Unmarshal([]byte(responses), &t.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	t.StartedAt = time.UnixMilli(started).UTC()
	t.EndedAt = time.UnixMilli(ended).UTC()
	return &t, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
