package hookclient

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v81/github"
)

const defaultAuthor = "ghevents"

// BuildPushPayload renders a push delivery body.
func BuildPushPayload(sample PushSample) ([]byte, error) {
	branch := strings.TrimSpace(sample.Branch)
	if branch == "" {
		branch = "main"
	}
	commitID := strings.TrimSpace(sample.CommitID)
	if commitID == "" {
		generated, err := randomSHA(40)
		if err != nil {
			return nil, fmt.Errorf("generate commit id: %w", err)
		}
		commitID = generated
	}
	author := strings.TrimSpace(sample.Author)
	if author == "" {
		author = defaultAuthor
	}

	event := gh.PushEvent{
		Ref:   gh.Ptr("refs/heads/" + branch),
		After: gh.Ptr(commitID),
		HeadCommit: &gh.HeadCommit{
			ID:        gh.Ptr(commitID),
			Message:   gh.Ptr("sample commit " + commitID[:min(7, len(commitID))]),
			Timestamp: &gh.Timestamp{Time: stamp(sample.Timestamp)},
		},
		Pusher: &gh.CommitAuthor{Name: gh.Ptr(author)},
	}
	return json.Marshal(event)
}

// BuildPullRequestPayload renders a pull_request delivery body. A merged
// sample is sent as a closed action with merged_at set.
func BuildPullRequestPayload(sample PullRequestSample) ([]byte, error) {
	if sample.Number <= 0 {
		return nil, fmt.Errorf("pull request number must be positive")
	}
	action := strings.TrimSpace(sample.Action)
	if sample.Merged {
		action = "closed"
	}
	if action == "" {
		action = "opened"
	}
	author := strings.TrimSpace(sample.Author)
	if author == "" {
		author = defaultAuthor
	}
	head := strings.TrimSpace(sample.Head)
	if head == "" {
		head = "feature"
	}
	base := strings.TrimSpace(sample.Base)
	if base == "" {
		base = "main"
	}
	ts := &gh.Timestamp{Time: stamp(sample.Timestamp)}

	pr := &gh.PullRequest{
		ID:        gh.Ptr(int64(sample.Number)),
		Number:    gh.Ptr(sample.Number),
		Merged:    gh.Ptr(sample.Merged),
		User:      &gh.User{Login: gh.Ptr(author)},
		Head:      &gh.PullRequestBranch{Ref: gh.Ptr(head)},
		Base:      &gh.PullRequestBranch{Ref: gh.Ptr(base)},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if sample.Merged {
		pr.MergedAt = ts
	}

	return json.Marshal(gh.PullRequestEvent{
		Action:      gh.Ptr(action),
		Number:      gh.Ptr(sample.Number),
		PullRequest: pr,
	})
}

// BuildPingPayload renders the body GitHub sends when a hook is created.
func BuildPingPayload() ([]byte, error) {
	return json.Marshal(gh.PingEvent{
		Zen:    gh.Ptr("Keep it logically awesome."),
		HookID: gh.Ptr(int64(1)),
	})
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second)
}

func randomSHA(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid length")
	}
	raw := make([]byte, (length+1)/2)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw)[:length], nil
}
