package client

import (
	"context"
	"errors"
	"time"
)

// ErrGenerationFailed is returned when the backend explicitly reports a
// terminal job failure. Exhausting the attempt budget is NOT an error: the
// poller returns no result and the caller substitutes a placeholder, so one
// stuck provider cannot abort a whole campaign.
var ErrGenerationFailed = errors.New("generation job failed")

// PollPolicy bounds a polling loop: fixed interval between attempts and a
// hard attempt ceiling.
type PollPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Image jobs finish in under a minute; video jobs are slower and get a
// larger budget.
var (
	ImagePollPolicy = PollPolicy{Interval: 2 * time.Second, MaxAttempts: 30}
	VideoPollPolicy = PollPolicy{Interval: 3 * time.Second, MaxAttempts: 60}
)

// jobStatus is one normalized status snapshot of a queued generation job.
type jobStatus struct {
	Status string
	URL    string
}

// pollJob resolves a queued generation job by repeated status requests.
// Each attempt sleeps the interval first, then fetches. Terminal success
// returns the artifact URL; terminal failure returns ErrGenerationFailed
// immediately; budget exhaustion returns ("", nil).
func pollJob(ctx context.Context, policy PollPolicy, fetch func(context.Context) (jobStatus, error)) (string, error) {
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(policy.Interval):
		}

		st, err := fetch(ctx)
		if err != nil {
			return "", err
		}

		switch st.Status {
		case "completed", "COMPLETED", "success":
			if st.URL != "" {
				return st.URL, nil
			}
		case "failed", "FAILED", "error", "ERROR":
			return "", ErrGenerationFailed
		}
	}

	return "", nil
}
