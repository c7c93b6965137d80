package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
)

var (
	agentID        string
	customerUserID string
	skip           int
	take           int
	payloadData    string
	payloadFile    string
	noConfirm      bool
	forced         bool
)

// accountsCmd groups the customer account commands
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage customer accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customer accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountsList,
}

var accountsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search customer accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountsSearch,
}

var accountsByAgentCmd = &cobra.Command{
	Use:   "by-agent <agent-id>",
	Short: "List the accounts attached to an agent",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsByAgent,
}

var accountsGetCmd = &cobra.Command{
	Use:   "get <account-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsGet,
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account and start its first synchronization",
	Long: `Create a customer account from a JSON payload given with --data or --file
(use --file - to read standard input). The API starts a synchronization right away.`,
	Args: cobra.NoArgs,
	RunE: runAccountsCreate,
}

var accountsModifyCmd = &cobra.Command{
	Use:   "modify <account-id>",
	Short: "Replace an account with a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsModify,
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsDelete,
}

var accountsSyncCmd = &cobra.Command{
	Use:   "sync <account-id>",
	Short: "Trigger a synchronization of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsSync,
}

var accountsMFACmd = &cobra.Command{
	Use:   "mfa <account-id> <code>",
	Short: "Send a multi-factor authentication code for a running synchronization",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsMFA,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(
		accountsListCmd,
		accountsSearchCmd,
		accountsByAgentCmd,
		accountsGetCmd,
		accountsCreateCmd,
		accountsModifyCmd,
		accountsDeleteCmd,
		accountsSyncCmd,
		accountsMFACmd,
	)

	for _, c := range []*cobra.Command{accountsListCmd, accountsSearchCmd} {
		c.Flags().StringVar(&agentID, "agent", "", "only accounts of this agent")
		c.Flags().StringVar(&customerUserID, "customer-user", "", "only accounts of this customer user")
	}
	for _, c := range []*cobra.Command{accountsListCmd, accountsSearchCmd, accountsByAgentCmd} {
		addPageFlags(c)
		addFilterFlags(c)
	}
	for _, c := range []*cobra.Command{accountsCreateCmd, accountsModifyCmd} {
		addPayloadFlags(c)
	}

	accountsDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	accountsSyncCmd.Flags().StringVar(&customerUserID, "customer-user", "", "customer user owning the account")
	accountsSyncCmd.Flags().BoolVar(&forced, "forced", false, "synchronize even if a recent synchronization exists")
	_ = accountsSyncCmd.MarkFlagRequired("customer-user")
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&skip, "skip", 0, "number of results to skip")
	cmd.Flags().IntVar(&take, "take", 0, "maximum number of results")
}

func addPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&payloadData, "data", "", "inline JSON payload")
	cmd.Flags().StringVar(&payloadFile, "file", "", "path to a JSON payload, - for stdin")
}

func accountsOptions(cmd *cobra.Command) cloudagents.AccountsOptions {
	return cloudagents.AccountsOptions{
		AgentID:        agentID,
		CustomerUserID: customerUserID,
		Skip:           optionalInt(cmd, "skip", skip),
		Take:           optionalInt(cmd, "take", take),
	}
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	accounts, err := client.GetAllAccounts(cmd.Context(), accountsOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	return printList(cmd, accounts, "id", "name", "agentId", "customerUserId")
}

func runAccountsSearch(cmd *cobra.Command, args []string) error {
	accounts, err := client.SearchAccounts(cmd.Context(), accountsOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to search accounts: %w", err)
	}

	return printList(cmd, accounts, "id", "name", "agentId", "customerUserId")
}

func runAccountsByAgent(cmd *cobra.Command, args []string) error {
	accounts, err := client.GetAccountsByAgent(cmd.Context(), args[0], cloudagents.PageOptions{
		Skip: optionalInt(cmd, "skip", skip),
		Take: optionalInt(cmd, "take", take),
	})
	if err != nil {
		return fmt.Errorf("failed to get accounts of agent %s: %w", args[0], err)
	}

	return printList(cmd, accounts, "id", "name", "customerUserId")
}

func runAccountsGet(cmd *cobra.Command, args []string) error {
	account, err := client.GetAccount(cmd.Context(), args[0])
	if err != nil {
		if cloudagents.IsNotFound(err) {
			return fmt.Errorf("account %s not found", args[0])
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), account)
}

func runAccountsCreate(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	account, err := client.CreateAccount(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info().Str("account", account.ID()).Msg("Account created, synchronization started")
	return printJSON(cmd.OutOrStdout(), account)
}

func runAccountsModify(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	account, err := client.ModifyAccount(cmd.Context(), args[0], payload)
	if err != nil {
		return fmt.Errorf("failed to modify account: %w", err)
	}

	logger.Info().Str("account", args[0]).Msg("Account modified")
	return printJSON(cmd.OutOrStdout(), account)
}

func runAccountsDelete(cmd *cobra.Command, args []string) error {
	accountID := args[0]

	if !noConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete account %s and its synchronization history? [y/N]: ", accountID)

		scanner := bufio.NewScanner(cmd.InOrStdin())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			// No input (Ctrl+D or similar)
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return nil
		}
		if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return nil
		}
	}

	if err := client.DeleteAccount(cmd.Context(), accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info().Str("account", accountID).Msg("Account deleted")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Account %s deleted\n", accountID)
	return nil
}

func runAccountsSync(cmd *cobra.Command, args []string) error {
	started, err := client.SynchronizeAccount(cmd.Context(), args[0], customerUserID, forced)
	if err != nil {
		return fmt.Errorf("failed to synchronize account: %w", err)
	}

	logger.Info().
		Str("account", args[0]).
		Bool("forced", forced).
		Msg("Synchronization requested")
	return printJSON(cmd.OutOrStdout(), started)
}

func runAccountsMFA(cmd *cobra.Command, args []string) error {
	result, err := client.SendMFACode(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to send MFA code: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), result)
}

// readPayload decodes the JSON object given with --data or --file
func readPayload(cmd *cobra.Command) (map[string]any, error) {
	var raw []byte
	switch {
	case payloadData != "" && payloadFile != "":
		return nil, fmt.Errorf("use either --data or --file, not both")
	case payloadData != "":
		raw = []byte(payloadData)
	case payloadFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		raw = data
	case payloadFile != "":
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		raw = data
	default:
		return nil, fmt.Errorf("a JSON payload is required (--data or --file)")
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	return payload, nil
}
