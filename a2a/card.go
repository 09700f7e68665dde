package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	ab "github.com/spetersoncode/a2abatch"
)

// AgentCardPath is the well-known path where agents publish their card.
const AgentCardPath = "/.well-known/agent-card.json"

// AgentCapabilities describes optional protocol features of an agent.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentProvider identifies the organization behind an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitempty"`
}

// AgentSkill describes a specific capability of the agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentCard is the discovery document an agent serves at AgentCardPath.
// Unknown members are ignored.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	URL                string            `json:"url,omitempty"`
	Version            string            `json:"version,omitempty"`
	ProtocolVersion    string            `json:"protocolVersion,omitempty"`
	Provider           *AgentProvider    `json:"provider,omitempty"`
	DocumentationURL   string            `json:"documentationUrl,omitempty"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill      `json:"skills,omitempty"`
}

// AgentCardURL joins baseURL and AgentCardPath.
func AgentCardURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", ab.NewConfigError("invalid base URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ab.NewConfigError(fmt.Sprintf("base URL %q must be absolute", baseURL), nil)
	}
	return u.JoinPath(AgentCardPath).String(), nil
}

// FetchAgentCard retrieves the agent card published under baseURL. It is a
// connectivity check only and is never part of message dispatch.
func FetchAgentCard(ctx context.Context, baseURL string, doer Doer) (*AgentCard, error) {
	if doer == nil {
		doer = http.DefaultClient
	}

	cardURL, err := AgentCardURL(baseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, ab.NewTransportError("failed to create request", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		return nil, ab.NewTransportError("failed to fetch agent card", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ab.NewTransportError("failed to read agent card", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ab.NewTransportError(
			fmt.Sprintf("agent card request failed with status %d", resp.StatusCode),
			resp.StatusCode,
			statusError(body),
		)
	}

	var card AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, ab.NewProtocolError("failed to decode agent card", err)
	}

	return &card, nil
}
