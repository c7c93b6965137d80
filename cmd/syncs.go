package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
)

var (
	startDate         string
	endDate           string
	customerAccountID string
	watchInterval     time.Duration
	watchTimeout      time.Duration
)

// syncsCmd groups the synchronization commands
var syncsCmd = &cobra.Command{
	Use:     "syncs",
	Aliases: []string{"synchronizations"},
	Short:   "Follow account synchronizations",
}

var syncsLastCmd = &cobra.Command{
	Use:   "last <account-id>...",
	Short: "Show the last synchronization of one or more accounts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSyncsLast,
}

var syncsListCmd = &cobra.Command{
	Use:   "list <account-id>",
	Short: "List the synchronizations of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyncsList,
}

var syncsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search synchronizations",
	Args:  cobra.NoArgs,
	RunE:  runSyncsSearch,
}

var syncsAckCmd = &cobra.Command{
	Use:   "ack <account-id>",
	Short: "Acknowledge the pending synchronization of an account",
	Long: `Acknowledge the pending synchronization of an account. The acknowledgement
payload is given with --data or --file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncsAck,
}

var syncsWatchCmd = &cobra.Command{
	Use:   "watch-states <account-id>...",
	Short: "Poll the last synchronization of accounts until each one stops progressing",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSyncsWatch,
}

var syncsStatesCmd = &cobra.Command{
	Use:               "states",
	Short:             "Print the synchronization state and detail codes",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE:              runSyncsStates,
}

func init() {
	rootCmd.AddCommand(syncsCmd)
	syncsCmd.AddCommand(syncsLastCmd, syncsListCmd, syncsSearchCmd, syncsAckCmd, syncsWatchCmd, syncsStatesCmd)

	for _, c := range []*cobra.Command{syncsListCmd, syncsSearchCmd} {
		c.Flags().StringVar(&startDate, "start", "", "only synchronizations after this date")
		c.Flags().StringVar(&endDate, "end", "", "only synchronizations before this date")
		addFilterFlags(c)
	}

	syncsSearchCmd.Flags().StringVar(&customerAccountID, "account", "", "only synchronizations of this account")
	syncsSearchCmd.Flags().StringVar(&customerUserID, "customer-user", "", "only synchronizations of this customer user")
	addPageFlags(syncsSearchCmd)

	addPayloadFlags(syncsAckCmd)

	syncsWatchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "polling interval")
	syncsWatchCmd.Flags().DurationVar(&watchTimeout, "timeout", 5*time.Minute, "give up after this long, 0 to wait forever")
}

func runSyncsLast(cmd *cobra.Command, args []string) error {
	results, err := client.GetLastSynchronizations(cmd.Context(), args)
	if err != nil {
		return err
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	if jsonOutput {
		byAccount := make(map[string]any, len(results))
		for _, result := range results {
			if result.Err != nil {
				byAccount[result.AccountID] = map[string]string{"error": result.Err.Error()}
				continue
			}
			byAccount[result.AccountID] = result.Synchronization
		}
		if err := printJSON(cmd.OutOrStdout(), byAccount); err != nil {
			return err
		}
	} else {
		printSynchronizationTable(cmd.OutOrStdout(), results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d accounts failed", failed, len(results))
	}
	return nil
}

func runSyncsList(cmd *cobra.Command, args []string) error {
	syncs, err := client.GetSynchronizationsByAccount(cmd.Context(), args[0], cloudagents.DateRange{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return fmt.Errorf("failed to get synchronizations: %w", err)
	}

	return printList(cmd, withStateNames(syncs), synchronizationColumns...)
}

func runSyncsSearch(cmd *cobra.Command, args []string) error {
	syncs, err := client.SearchSynchronizations(cmd.Context(), cloudagents.SearchSynchronizationsOptions{
		CustomerAccountID: customerAccountID,
		CustomerUserID:    customerUserID,
		StartDate:         startDate,
		EndDate:           endDate,
		Skip:              optionalInt(cmd, "skip", skip),
		Take:              optionalInt(cmd, "take", take),
	})
	if err != nil {
		return fmt.Errorf("failed to search synchronizations: %w", err)
	}

	return printList(cmd, withStateNames(syncs), synchronizationColumns...)
}

func runSyncsAck(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	if err := client.AcknowledgeSynchronizationForAccount(cmd.Context(), args[0], payload); err != nil {
		return fmt.Errorf("failed to acknowledge synchronization: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Synchronization of account %s acknowledged\n", args[0])
	return nil
}

func runSyncsWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if watchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchTimeout)
		defer cancel()
	}

	return watchSynchronizations(ctx, cmd.OutOrStdout(), client, args, watchInterval)
}

// watchSynchronizations polls the last synchronization of each account,
// printing every state change, until all of them reach a terminal state
func watchSynchronizations(ctx context.Context, out io.Writer, api cloudagents.API, accountIDs []string, interval time.Duration) error {
	pending := append([]string(nil), accountIDs...)
	seen := make(map[string]string, len(accountIDs))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		results, err := api.GetLastSynchronizations(ctx, pending)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("gave up waiting for %d accounts: %w", len(pending), err)
			}
			return err
		}

		remaining := pending[:0]
		for _, result := range results {
			if result.Err != nil {
				logger.Warn().Err(result.Err).Str("account", result.AccountID).Msg("Failed to poll synchronization")
				remaining = append(remaining, result.AccountID)
				continue
			}

			code, _ := result.Synchronization.Int("synchronizationState")
			detail, _ := result.Synchronization.Int("synchronizationStateDetails")
			state := cloudagents.SynchronizationState(code)
			line := fmt.Sprintf("%s / %s", state, cloudagents.SynchronizationStateDetail(detail))
			if seen[result.AccountID] != line {
				seen[result.AccountID] = line
				fmt.Fprintf(out, "%s  %-36s %s\n", time.Now().Format(time.TimeOnly), result.AccountID, line)
			}

			if !state.Terminal() {
				remaining = append(remaining, result.AccountID)
			}
		}
		pending = remaining

		if len(pending) == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up waiting for %d accounts: %w", len(pending), ctx.Err())
		case <-ticker.C:
		}
	}
}

func runSyncsStates(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tNAME\tTERMINAL")
	for _, state := range cloudagents.SynchronizationStates() {
		fmt.Fprintf(tw, "%d\t%s\t%t\n", state, state, state.Terminal())
	}
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "DETAIL\tNAME\t")
	for _, detail := range cloudagents.SynchronizationStateDetails() {
		fmt.Fprintf(tw, "%d\t%s\t\n", detail, detail)
	}
	return tw.Flush()
}

var synchronizationColumns = []string{"id", "customerAccountId", "stateName", "detailName", "creationDate"}

// withStateNames adds stateName and detailName fields for display
func withStateNames(syncs []cloudagents.Object) []cloudagents.Object {
	for _, s := range syncs {
		if code, ok := s.Int("synchronizationState"); ok {
			s["stateName"] = cloudagents.SynchronizationState(code).String()
		}
		if code, ok := s.Int("synchronizationStateDetails"); ok {
			s["detailName"] = cloudagents.SynchronizationStateDetail(code).String()
		}
	}
	return syncs
}

func printSynchronizationTable(out io.Writer, results []cloudagents.LastSynchronizationResult) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tSYNCHRONIZATION\tSTATE\tDETAIL")
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(tw, "%s\t-\terror\t%s\n", result.AccountID, truncate(result.Err.Error(), 60))
			continue
		}
		s := withStateNames([]cloudagents.Object{result.Synchronization})[0]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", result.AccountID, s.ID(), s.String("stateName"), s.String("detailName"))
	}
	tw.Flush()
}
