package model

// RenderedMessage is one formatted line addressed to one channel.
type RenderedMessage struct {
	Channel string
	Text    string
}
