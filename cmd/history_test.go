package cmd

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/intervue/internal/store"
)

func seedTranscript(t *testing.T, db string, data store.TranscriptData) int {
	t.Helper()
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	id, err := st.TranscriptRepo().Save(context.Background(), data)
	require.NoError(t, err)
	return id
}

func TestHistoryCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "intervue.db")

	out, err := execute(t, "", "history", "list", "--db", db, "--category", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No practice interviews saved yet.")

	started := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	id := seedTranscript(t, db, store.TranscriptData{
		SessionID:   "s-1",
		JobCategory: "Software Engineering",
		JobSkill:    "Backend",
		Questions: []store.QuestionRecord{
			{ID: "q1", Text: "Tell me about yourself.", Category: "common"},
			{ID: "f1", Text: "What did you own end to end?", Category: "follow_up"},
			{ID: "q2", Text: "Describe a hard bug.", Category: "common"},
		},
		Responses: []store.ResponseRecord{{QuestionID: "q1", Text: "I build APIs."}},
		Feedback:  "Be more specific.",
		StartedAt: started,
		EndedAt:   started.Add(4 * time.Minute),
	})
	seedTranscript(t, db, store.TranscriptData{SessionID: "s-2", JobCategory: "Design", StartedAt: started, EndedAt: started})

	out, err = execute(t, "", "history", "list", "--db", db, "--category", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Software Engineering")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "4m0s")
	assert.Contains(t, out, "Design")

	out, err = execute(t, "", "history", "list", "--db", db, "--category", "design")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	assert.NotContains(t, out, "Software Engineering")

	out, err = execute(t, "", "history", "view", strconv.Itoa(id), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Q1. Tell me about yourself.")
	assert.Contains(t, out, "Q1a. What did you own end to end?")
	assert.Contains(t, out, "Q2. Describe a hard bug.")
	assert.Contains(t, out, "(not answered)")
	assert.Contains(t, out, "Be more specific.")

	_, err = execute(t, "", "history", "view", "999", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interview 999 not found")
}

func TestTranscriptText_LeadingFollowUp(t *testing.T) {
	// A follow-up with nothing before it is numbered like a main question.
	text := transcriptText(&store.Transcript{TranscriptData: store.TranscriptData{
		Questions: []store.QuestionRecord{{ID: "f1", Text: "Why?", Category: "follow_up"}},
	}})
	assert.Contains(t, text, "Q1. Why?")
}
