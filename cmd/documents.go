package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
)

var (
	pendingOnly    bool
	includeContent bool
)

// documentsCmd groups the document commands
var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Retrieve collected documents",
}

var documentsGetCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsGet,
}

var documentsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsSearch,
}

var documentsByAccountCmd = &cobra.Command{
	Use:   "by-account <account-id>",
	Short: "List the documents collected for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsByAccount,
}

var documentsAckCmd = &cobra.Command{
	Use:   "ack <document-id>...",
	Short: "Acknowledge the delivery of documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentsAck,
}

func init() {
	rootCmd.AddCommand(documentsCmd)
	documentsCmd.AddCommand(documentsGetCmd, documentsSearchCmd, documentsByAccountCmd, documentsAckCmd)

	documentsSearchCmd.Flags().StringVar(&customerAccountID, "account", "", "only documents of this account")
	documentsSearchCmd.Flags().StringVar(&customerUserID, "customer-user", "", "only documents of this customer user")

	for _, c := range []*cobra.Command{documentsSearchCmd, documentsByAccountCmd} {
		c.Flags().BoolVar(&pendingOnly, "pending", false, "only documents not yet acknowledged")
		c.Flags().BoolVar(&includeContent, "include-content", false, "include document content in the response")
		addFilterFlags(c)
	}
}

var documentColumns = []string{"id", "customerAccountId", "name", "creationDate"}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	document, err := client.GetDocument(cmd.Context(), args[0])
	if err != nil {
		if cloudagents.IsNotFound(err) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), document)
}

func runDocumentsSearch(cmd *cobra.Command, args []string) error {
	documents, err := client.SearchDocuments(cmd.Context(), cloudagents.SearchDocumentsOptions{
		CustomerAccountID: customerAccountID,
		CustomerUserID:    customerUserID,
		PendingOnly:       optionalBool(cmd, "pending", pendingOnly),
		IncludeContent:    optionalBool(cmd, "include-content", includeContent),
	})
	if err != nil {
		return fmt.Errorf("failed to search documents: %w", err)
	}

	return printList(cmd, documents, documentColumns...)
}

func runDocumentsByAccount(cmd *cobra.Command, args []string) error {
	documents, err := client.GetDocumentsByAccount(cmd.Context(), args[0], cloudagents.DocumentsOptions{
		PendingOnly:    optionalBool(cmd, "pending", pendingOnly),
		IncludeContent: optionalBool(cmd, "include-content", includeContent),
	})
	if err != nil {
		return fmt.Errorf("failed to get documents of account %s: %w", args[0], err)
	}

	return printList(cmd, documents, documentColumns...)
}

func runDocumentsAck(cmd *cobra.Command, args []string) error {
	var failed int
	for _, documentID := range args {
		if err := client.AcknowledgeDocumentDelivery(cmd.Context(), documentID); err != nil {
			logger.Error().Err(err).Str("document", documentID).Msg("Failed to acknowledge document")
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Document %s acknowledged\n", documentID)
	}

	if failed > 0 {
		return fmt.Errorf("failed to acknowledge %d of %d documents", failed, len(args))
	}
	return nil
}
