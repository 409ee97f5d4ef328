package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	preset    string
	teamName  string
	teamID    string
	matchIdx  string
	fieldName string
	value     string
)

func init() {
	standingsCmd.Flags().StringVar(&preset, "preset", "freefire", "Scoring preset to rank with")
	addTeamCmd.Flags().StringVar(&teamName, "name", "", "Name of the team to add")
	removeTeamCmd.Flags().StringVar(&teamID, "team", "", "ID of the team to remove")
	scoreCmd.Flags().StringVar(&teamID, "team", "", "ID of the team to score")
	scoreCmd.Flags().StringVar(&matchIdx, "match", "0", "Zero-based match index")
	scoreCmd.Flags().StringVar(&fieldName, "field", "kills", "Score field: kills, placement or bonus")
	scoreCmd.Flags().StringVar(&value, "value", "0", "New value for the field")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(addTeamCmd)
	rootCmd.AddCommand(removeTeamCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(addMatchCmd)
	rootCmd.AddCommand(removeMatchCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the ranked standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings?preset=" + url.QueryEscape(preset))
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams")
	},
}

var addTeamCmd = &cobra.Command{
	Use:   "add-team",
	Short: "Add a team to the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams/add?name=" + url.QueryEscape(teamName))
	},
}

var removeTeamCmd = &cobra.Command{
	Use:   "remove-team",
	Short: "Remove a team from the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams/remove?teamID=" + url.QueryEscape(teamID))
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Update one score field of a team's match",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("teamID", teamID)
		q.Set("match", matchIdx)
		q.Set("field", fieldName)
		q.Set("value", value)
		return performGetRequest("/score?" + q.Encode())
	},
}

var addMatchCmd = &cobra.Command{
	Use:   "add-match",
	Short: "Grow the tournament by one match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/add")
	},
}

var removeMatchCmd = &cobra.Command{
	Use:   "remove-match",
	Short: "Drop the last match of the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/remove")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every team from the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Resynchronize the server's view with the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reload")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
