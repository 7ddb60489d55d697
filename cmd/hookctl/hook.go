package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"repo-relay/internal/model"
	"repo-relay/internal/subscription"
)

var colorNick string

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage channel subscriptions",
}

var hookLinkCmd = &cobra.Command{
	Use:   "link <channel> <owner/repo> [enable|disable]",
	Short: "Enable or disable a channel's subscription to a repository",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := true
		if len(args) == 3 {
			switch strings.ToLower(args[2]) {
			case "enable", "on", "true":
			case "disable", "off", "false":
				enabled = false
			default:
				return fmt.Errorf("expected enable or disable, got %q", args[2])
			}
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.uc.Link(ctx, subscription.LinkInput{Channel: args[0], Repo: args[1], Enabled: enabled})
			if err != nil {
				return reply(cmd, a, err, args[1])
			}
			for _, line := range subscription.LinkReplies(out, a.prefix) {
				cmd.Println(line)
			}
			return nil
		})
	},
}

var hookColorCmd = &cobra.Command{
	Use:   "color <channel> <owner/repo> <repo> <name> <branch> <tag> <hash> <url>",
	Short: "Set the six mIRC colors used for a subscription",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.uc.SetColors(ctx, subscription.SetColorsInput{
				Channel: args[0],
				Repo:    args[1],
				Colors:  args[2:],
				Nick:    colorNick,
			})
			if err != nil {
				return reply(cmd, a, err, args[1])
			}
			cmd.Println(out.Preview)
			return nil
		})
	},
}

var hookListCmd = &cobra.Command{
	Use:   "list [owner/repo]",
	Short: "List subscriptions, optionally for one repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input subscription.ListInput
		if len(args) == 1 {
			input.Repo = args[0]
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			subs, err := a.uc.List(ctx, input)
			if err != nil {
				return reply(cmd, a, err, input.Repo)
			}
			if len(subs) == 0 {
				cmd.Println("No subscriptions.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHANNEL\tREPOSITORY\tENABLED\tCOLORS")
			for _, sub := range subs {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", sub.Channel, sub.Repo, sub.Enabled, describeColors(sub.Colors))
			}
			return w.Flush()
		})
	},
}

var hookShowCmd = &cobra.Command{
	Use:   "show <channel> <owner/repo>",
	Short: "Show one subscription",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			sub, err := a.uc.Get(ctx, args[0], args[1])
			if err != nil {
				return reply(cmd, a, err, args[1])
			}
			cmd.Printf("Channel:  %s\n", sub.Channel)
			cmd.Printf("Repo:     %s\n", sub.Repo)
			cmd.Printf("Enabled:  %t\n", sub.Enabled)
			cmd.Printf("Colors:   %s\n", describeColors(sub.Colors))
			cmd.Printf("Updated:  %s\n", sub.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		})
	},
}

func init() {
	hookColorCmd.Flags().StringVar(&colorNick, "nick", "hookctl", "name shown in the color preview")
	hookCmd.AddCommand(hookLinkCmd, hookColorCmd, hookListCmd, hookShowCmd)
}

// reply prints the operator-facing message for a use-case error and
// returns the error so the exit status reflects it.
func reply(cmd *cobra.Command, a *app, err error, repo string) error {
	cmd.PrintErrln(subscription.UserMessage(err, a.prefix, strings.ToLower(repo)))
	return err
}

func describeColors(c *model.ColorScheme) string {
	if c == nil {
		return "default"
	}
	return fmt.Sprintf("%d %d %d %d %d %d", c.Repo, c.Name, c.Branch, c.Tag, c.Hash, c.URL)
}
