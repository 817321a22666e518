package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved practice interviews",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent practice interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		transcripts, err := st.TranscriptRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list transcripts: %w", err)
		}
		if category != "" {
			transcripts = slices.DeleteFunc(transcripts, func(t store.Transcript) bool {
				return !strings.EqualFold(t.JobCategory, category)
			})
		}

		out := cmd.OutOrStdout()
		if len(transcripts) == 0 {
			fmt.Fprintln(out, "No practice interviews saved yet.")
			return nil
		}

		t := newTable("ID", "Started", "Category", "Skill", "Answered", "Duration")
		for _, tr := range transcripts {
			t.Row(
				strconv.Itoa(tr.ID),
				tr.StartedAt.Local().Format(timeLayout),
				truncate(tr.JobCategory, 24),
				truncate(tr.JobSkill, 22),
				fmt.Sprintf("%d/%d", len(tr.Responses), len(tr.Questions)),
				tr.EndedAt.Sub(tr.StartedAt).Round(time.Second).String(),
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the questions, answers and feedback of a practice interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := st.TranscriptRepo().Get(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("interview %d not found", id)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", t.ID)
		fmt.Fprintf(out, "Session:   %s\n", t.SessionID)
		fmt.Fprintf(out, "Started:   %s\n", t.StartedAt.Local().Format(timeLayout))
		fmt.Fprintf(out, "Category:  %s\n", t.JobCategory)
		if t.JobSkill != "" {
			fmt.Fprintf(out, "Skill:     %s\n", t.JobSkill)
		}
		if t.TechnicalLanguage != "" {
			fmt.Fprintf(out, "Focus:     %s\n", t.TechnicalLanguage)
		}

		section(out, "TRANSCRIPT", transcriptText(t), "(no questions)")
		section(out, "FEEDBACK", t.Feedback, "(none)")
		return nil
	},
}

// transcriptText numbers the main questions; follow-ups are lettered under
// the question before them (Q2, Q2a, Q2b).
func transcriptText(t *store.Transcript) string {
	answers := make(map[string]string, len(t.Responses))
	for _, r := range t.Responses {
		answers[r.QuestionID] = r.Text
	}

	var (
		b        strings.Builder
		n        int
		followUp rune
	)
	for _, q := range t.Questions {
		label := ""
		if q.Category == interview.CategoryFollowUp && n > 0 {
			followUp++
			label = fmt.Sprintf("Q%d%c", n, 'a'+followUp-1)
		} else {
			n++
			followUp = 0
			label = fmt.Sprintf("Q%d", n)
		}
		fmt.Fprintf(&b, "%s. %s\n", label, q.Text)
		if a, ok := answers[q.ID]; ok {
			fmt.Fprintf(&b, "    %s\n\n", a)
		} else {
			b.WriteString("    (not answered)\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of interviews to show")
	historyListCmd.Flags().StringP("category", "c", "", "Only show one job category")

	historyCmd.AddCommand(historyListCmd, historyViewCmd)
}
