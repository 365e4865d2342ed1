package wizard

import (
	"time"

	wiz "github.com/abhisek/prepcoach/internal/wizard"
)

// outcomeMsg carries the result of a service call back to Update.
type outcomeMsg struct {
	Outcome *wiz.Outcome
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
