package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"repo-relay/internal/unfurl"
	"repo-relay/pkg/githubclient"
)

var unfurlChannel string

var unfurlCmd = &cobra.Command{
	Use:   "unfurl <text>",
	Short: "Print the summaries the bot would post for links in text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			r, err := a.resolver(ctx)
			if err != nil {
				return err
			}
			lines, err := r.Resolve(ctx, unfurlChannel, strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, line := range lines {
				cmd.Println(line)
			}
			return nil
		})
	},
}

// resolver builds an unfurl.Resolver over the configured GitHub API.
func (a *app) resolver(ctx context.Context) (*unfurl.Resolver, error) {
	gh, err := githubclient.New(ctx, githubclient.Options{
		Token:  a.cfg.GitHub.Token,
		APIURL: a.cfg.GitHub.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return unfurl.New(gh, a.uc, a.short, a.l), nil
}

func init() {
	unfurlCmd.Flags().StringVar(&unfurlChannel, "channel", "", "channel whose linked repository resolves bare #123 references")
}
