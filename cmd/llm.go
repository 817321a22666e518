package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the interviewer's LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		if purpose != "" && !slices.Contains(llm.Purposes(), llm.Purpose(purpose)) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, purposeList())
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = slices.DeleteFunc(events, func(e store.LLMEvent) bool { return e.Success })
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM calls recorded.")
			return nil
		}

		t := newTable("ID", "Time", "Purpose", "Model", "Tokens in/out", "Latency", "Result")
		for _, e := range events {
			result := "ok"
			if !e.Success {
				result = "failed"
			}
			t.Row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				fmt.Sprintf("%dms", e.LatencyMs),
				result,
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
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

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("LLM call %d not found", id)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
		fmt.Fprintf(out, "Model:     %s (%s)\n", e.Model, e.Provider)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		if usd, ok := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); ok {
			fmt.Fprintf(out, "Cost:      %s\n", formatCost(usd))
		}
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		if !e.Success {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		section(out, "PROMPT", e.RequestBody, "(not captured)")
		section(out, "REPLY", e.ResponseBody, "(not captured)")
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		var calls, in, outTok int
		usage := newTable("Purpose", "Calls", "Input", "Output", "Avg latency")
		for _, u := range byPurpose {
			usage.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
				fmt.Sprintf("%dms", u.AvgLatencyMs))
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		usage.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), "")
		fmt.Fprintln(out, "Usage by purpose")
		fmt.Fprintln(out, usage.String())

		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		var (
			total    float64
			unpriced []string
		)
		cost := newTable("Model", "Calls", "Input", "Output", "Cost (USD)")
		for _, m := range byModel {
			price := "?"
			if usd, ok := llm.EstimateCost(m.Model, m.InputTokens, m.OutputTokens); ok {
				total += usd
				price = formatCost(usd)
			} else {
				unpriced = append(unpriced, m.Model)
			}
			cost.Row(truncate(m.Model, 32), strconv.Itoa(m.Calls), strconv.Itoa(m.InputTokens), strconv.Itoa(m.OutputTokens), price)
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		cost.Row(label, "", "", "", formatCost(total))

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost")
		fmt.Fprintln(out, cost.String())
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func newTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style { return cell })
}

// section prints a titled block, or empty when body is blank. JSON bodies
// are indented.
func section(w io.Writer, title, body, empty string) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", sep, title, sep)
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(w, empty)
		return
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, []byte(body), "", "  ") == nil {
		body = pretty.String()
	}
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func purposeList() string {
	names := make([]string, 0, len(llm.Purposes()))
	for _, p := range llm.Purposes() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose ("+purposeList()+")")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
