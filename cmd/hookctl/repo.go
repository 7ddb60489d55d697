package main

import (
	"context"

	"github.com/spf13/cobra"

	"repo-relay/internal/subscription"
	"repo-relay/internal/unfurl"
)

var infoOwner string

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage the repository bare #123 references resolve against",
}

var repoSetCmd = &cobra.Command{
	Use:   "set <channel> <owner/repo>",
	Short: "Link a channel to a default repository",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.uc.SetChannelRepo(ctx, args[0], args[1]); err != nil {
				return reply(cmd, a, err, args[1])
			}
			repo, err := a.uc.GetChannelRepo(ctx, args[0])
			if err != nil {
				return reply(cmd, a, err, args[1])
			}
			cmd.Println(subscription.ChannelRepoReply(args[0], repo))
			return nil
		})
	},
}

var repoGetCmd = &cobra.Command{
	Use:   "get <channel>",
	Short: "Show a channel's default repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			repo, err := a.uc.GetChannelRepo(ctx, args[0])
			if err != nil {
				return reply(cmd, a, err, "")
			}
			cmd.Println(repo)
			return nil
		})
	},
}

var repoInfoCmd = &cobra.Command{
	Use:   "info <owner/repo | repo>",
	Short: "Print a repository's summary line",
	Long: `Print the summary the bot posts for a repository link. A bare repository
name is looked up under --owner.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := unfurl.RepoLink(args[0], infoOwner)
		if err != nil {
			cmd.PrintErrln("I need a repository name, or `user/reponame`.")
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			r, err := a.resolver(ctx)
			if err != nil {
				return err
			}
			line, err := r.Summarize(ctx, link)
			if err != nil {
				cmd.PrintErrln(unfurl.APIErrorLine)
				return err
			}
			cmd.Println(line)
			return nil
		})
	},
}

func init() {
	repoInfoCmd.Flags().StringVar(&infoOwner, "owner", "", "owner of a bare repository name")
	repoCmd.AddCommand(repoSetCmd, repoGetCmd, repoInfoCmd)
}
