package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/domain"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Manage challenges",
	Long:  `Challenges are named goals listed beside your habits. They have no completion state.`,
}

var challengeAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a challenge",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.habits.AddChallenge(cmd.Context(), strings.Join(args, " "))
		if ok, err := reportMutation(cmd, err); !ok {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"changed": true,
				"id":      c.ID,
				"name":    c.Name,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Challenge added: %s (ID: %s)\n", c.Name, shortID(c.ID))
		return nil
	},
}

var challengeRemoveCmd = &cobra.Command{
	Use:     "remove [challenge]",
	Aliases: []string{"rm"},
	Short:   "Remove a challenge by id, id prefix or name",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		challenges, err := app.habits.Challenges(cmd.Context())
		if err != nil {
			return err
		}

		c, err := findChallenge(challenges, query)
		if errors.Is(err, domain.ErrChallengeNotFound) {
			_, err = reportMutation(cmd, err)
			return err
		}
		if err != nil {
			return err
		}

		err = app.habits.RemoveChallenge(cmd.Context(), c.ID)
		if ok, err := reportMutation(cmd, err); !ok {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"changed": true,
				"id":      c.ID,
				"name":    c.Name,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑  Challenge removed: %s\n", c.Name)
		return nil
	},
}

var challengeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		challenges, err := app.habits.Challenges(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(challenges))
			for _, c := range challenges {
				list = append(list, map[string]interface{}{"id": c.ID, "name": c.Name})
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"challenges": list,
				"count":      len(list),
			})
		}

		out := cmd.OutOrStdout()
		if len(challenges) == 0 {
			fmt.Fprintln(out, "No challenges yet.")
			return nil
		}
		fmt.Fprintf(out, "🏆 Challenges (%d):\n\n", len(challenges))
		for _, c := range challenges {
			fmt.Fprintf(out, "◆ %s (ID: %s)\n", c.Name, shortID(c.ID))
		}
		return nil
	},
}

func init() {
	challengeCmd.AddCommand(challengeAddCmd)
	challengeCmd.AddCommand(challengeRemoveCmd)
	challengeCmd.AddCommand(challengeListCmd)
}

// findChallenge matches query against ids, then id prefixes, then names.
func findChallenge(challenges []domain.Challenge, query string) (domain.Challenge, error) {
	query = strings.TrimSpace(query)
	for _, c := range challenges {
		if c.ID == query {
			return c, nil
		}
	}
	var matches []domain.Challenge
	for _, c := range challenges {
		if strings.HasPrefix(c.ID, query) || strings.EqualFold(c.Name, query) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Challenge{}, domain.ErrChallengeNotFound
	case 1:
		return matches[0], nil
	}
	return domain.Challenge{}, fmt.Errorf("more than one challenge matches %q", query)
}
