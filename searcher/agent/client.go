package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
)

type remoteAgent struct {
	id        int
	serverURL string
	client    *http.Client
}

// NewRemoteAgent returns an agent playing as id that asks the agent server at
// serverURL for every action.
func NewRemoteAgent(id int, serverURL string) Agent {
	return &remoteAgent{
		id:        id,
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *remoteAgent) SelectAction(actions []game.Action, state *game.State) (game.Action, metrics.SearchMetric, error) {
	if len(actions) == 0 {
		return game.Action{}, metrics.SearchMetric{}, searcher.ErrInvalidInput
	}

	data, err := json.Marshal(selectRequest{Agent: a.id, State: state, Actions: actions})
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}
	start := time.Now()
	resp, err := a.client.Post(a.serverURL+"/select-action", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("agent %d: %w", a.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("agent %d: server returned %s: %s", a.id, resp.Status, strings.TrimSpace(string(body)))
	}
	var payload selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.Action, metrics.SearchMetric{Duration: time.Since(start), Episodes: payload.Episodes}, nil
}
