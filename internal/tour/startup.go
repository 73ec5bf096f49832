package tour

import (
	"context"
	"fmt"
	"time"

	"github.com/sclera-app/sclera/internal/db"
)

// StartupDelay is how long the shell waits after launch before starting or
// prompting, so the dashboard has rendered its targets.
const StartupDelay = 600 * time.Millisecond

// TutorialParamStart is the launch parameter value that forces the tour.
const TutorialParamStart = "start"

// StartMode is the startup decision for the walkthrough.
type StartMode int

const (
	// StartNone does nothing at launch.
	StartNone StartMode = iota

	// StartPrompt shows the welcome prompt.
	StartPrompt

	// StartForced starts the tour immediately, bypassing the prompt.
	StartForced
)

// LaunchParams carries the tour-relevant launch context. Tutorial is the
// value of the tutorial launch parameter; it is consumed here and never
// persisted.
type LaunchParams struct {
	Tutorial string
}

// DecideStartup implements the launch decision: a tutorial=start parameter
// forces the tour; otherwise first-ever visitors who have not completed the
// tour get the welcome prompt. The visited flag is written immediately upon
// this check, so the prompt is offered at most once regardless of what the
// user does with it.
func DecideStartup(ctx context.Context, launch LaunchParams, flags FlagStore) (StartMode, error) {
	if launch.Tutorial == TutorialParamStart {
		return StartForced, nil
	}

	visited, err := flags.IsTrue(ctx, db.PrefVisited)
	if err != nil {
		return StartNone, fmt.Errorf("read visited flag: %w", err)
	}
	completed, err := flags.IsTrue(ctx, db.PrefTutorialCompleted)
	if err != nil {
		return StartNone, fmt.Errorf("read completed flag: %w", err)
	}

	if !visited {
		if err := flags.Set(ctx, db.PrefVisited, "true"); err != nil {
			return StartNone, fmt.Errorf("set visited flag: %w", err)
		}
	}

	if !visited && !completed {
		return StartPrompt, nil
	}
	return StartNone, nil
}
