package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/store"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the locally stored LLM API key",
	Long: "Store an API key so intervue works without environment variables. " +
		"Keys from INTERVUE_* or the standard provider variables take priority.",
}

var keySetCmd = &cobra.Command{
	Use:   "set <provider> [key]",
	Short: "Store an API key for openai, gemini, anthropic or openrouter",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := strings.ToLower(args[0])

		var key string
		if len(args) == 2 {
			key = args[1]
		} else {
			fmt.Fprintf(os.Stderr, "Enter %s API key: ", provider)
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("API key cannot be empty")
		}

		if _, err := llm.ConfigWithKey(provider, key); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.CredentialRepo().SetAPIKey(cmd.Context(), provider, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s API key %s\n", provider, maskKey(key))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which provider key is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, key, err := st.CredentialRepo().Any(cmd.Context())
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", provider, maskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear <provider>",
	Short: "Remove the stored API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider := strings.ToLower(args[0])
		if err := st.CredentialRepo().ClearAPIKey(cmd.Context(), provider); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s API key\n", provider)
		return nil
	},
}

// maskKey keeps the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
