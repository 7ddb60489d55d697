package subscription

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t,
		`Please use ".gh-hook acme/widget enable" before attempting to configure colors!`,
		UserMessage(fmt.Errorf("set colors: %w", ErrNotSubscribed), ".", "acme/widget"))
	assert.Contains(t, UserMessage(ErrInvalidColorCount, "!", ""), "exactly 6 colors!")
	assert.Contains(t, UserMessage(ErrInvalidColor, "!", ""), "integers")
	assert.Contains(t, UserMessage(ErrInvalidRepo, "!", ""), `"!help gh-hook"`)
	assert.Equal(t, "", UserMessage(nil, ".", ""))
	assert.Contains(t, UserMessage(errors.New("db down"), ".", ""), "Something went wrong")
}
