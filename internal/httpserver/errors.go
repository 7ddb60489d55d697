package httpserver

import "errors"

var (
	ErrBind           = errors.New("webhook listener could not bind")
	ErrAlreadyRunning = errors.New("webhook listener already running")
)
