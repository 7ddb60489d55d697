package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrNotSubscribed     = errors.New("channel is not subscribed to repository")
	ErrInvalidRepo       = errors.New("invalid repository name")
	ErrInvalidChannel    = errors.New("invalid channel name")
	ErrInvalidColorCount = errors.New("exactly 6 colors are required")
	ErrInvalidColor      = errors.New("colors must be integers")
	ErrNoChannelRepo     = errors.New("no repository linked to channel")
)

// UserMessage turns a use-case error into the chat reply shown to the
// operator who issued the command. helpPrefix is the bot's command prefix.
func UserMessage(err error, helpPrefix, repo string) string {
	switch {
	case errors.Is(err, ErrNotSubscribed):
		return fmt.Sprintf("Please use \"%sgh-hook %s enable\" before attempting to configure colors!", helpPrefix, repo)
	case errors.Is(err, ErrInvalidRepo):
		return fmt.Sprintf("Invalid repo formatting, see \"%shelp gh-hook\" for an example", helpPrefix)
	case errors.Is(err, ErrInvalidChannel):
		return "[GitHub] GitHub hooks can only be configured in a channel"
	case errors.Is(err, ErrInvalidColor):
		return fmt.Sprintf("You must provide exactly 6 colors that are integers and are space separated. See \"%shelp gh-hook-color\" for more information.", helpPrefix)
	case errors.Is(err, ErrInvalidColorCount):
		return fmt.Sprintf("You must provide exactly 6 colors! See \"%shelp gh-hook-color\" for more information.", helpPrefix)
	case errors.Is(err, ErrNoChannelRepo):
		return "No repository is linked to this channel."
	case err == nil:
		return ""
	default:
		return "[GitHub] Something went wrong, please try again later."
	}
}
