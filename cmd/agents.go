package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
)

var (
	includeLogo bool
	country     string
	searchQuery string
)

// agentsCmd groups the agent commands
var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Browse the agents able to collect documents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all agents",
	Args:  cobra.NoArgs,
	RunE:  runAgentsList,
}

var agentsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search agents by country or free text",
	Args:  cobra.NoArgs,
	RunE:  runAgentsSearch,
}

var agentsByCategoryCmd = &cobra.Command{
	Use:   "by-category <category-id>",
	Short: "List the agents of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentsByCategory,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
	agentsCmd.AddCommand(agentsListCmd, agentsSearchCmd, agentsByCategoryCmd)

	agentsListCmd.Flags().BoolVar(&includeLogo, "include-logo", false, "include agent logos in the response")
	agentsListCmd.Flags().StringVar(&culture, "culture", "", "culture used for names, e.g. fr-FR")

	agentsSearchCmd.Flags().StringVar(&country, "country", "", "ISO country code")
	agentsSearchCmd.Flags().StringVar(&culture, "culture", "", "culture used for names, e.g. fr-FR")
	agentsSearchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "free text search")

	for _, c := range []*cobra.Command{agentsListCmd, agentsSearchCmd, agentsByCategoryCmd} {
		addFilterFlags(c)
	}
}

func runAgentsList(cmd *cobra.Command, args []string) error {
	agents, err := client.GetAgents(cmd.Context(), cloudagents.AgentsOptions{
		IncludeLogo: optionalBool(cmd, "include-logo", includeLogo),
		Culture:     culture,
	})
	if err != nil {
		return fmt.Errorf("failed to get agents: %w", err)
	}

	return printList(cmd, agents, "id", "name")
}

func runAgentsSearch(cmd *cobra.Command, args []string) error {
	agents, err := client.SearchAgents(cmd.Context(), cloudagents.SearchAgentsOptions{
		Country: country,
		Culture: culture,
		Query:   searchQuery,
	})
	if err != nil {
		return fmt.Errorf("failed to search agents: %w", err)
	}

	return printList(cmd, agents, "id", "name")
}

func runAgentsByCategory(cmd *cobra.Command, args []string) error {
	agents, err := client.GetAgentsByCategory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get agents of category %s: %w", args[0], err)
	}

	return printList(cmd, agents, "id", "name")
}
