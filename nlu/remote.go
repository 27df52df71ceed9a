package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
	"github.com/vinadenenko/voice-command/command"
)

// RemoteConfig configures a remote LLM-backed NLU classifier, per spec
// §6's RemoteLlmNluConfig.
type RemoteConfig struct {
	ServerURL          string
	Endpoint           string // default "/v1/chat/completions"
	APIKey             string
	Model              string
	TimeoutMs          int // default 30000
	Temperature        float64
	MaxTokens          int // default 256
	EnableDebugLogging bool
}

func (c RemoteConfig) endpoint() string {
	if c.Endpoint == "" {
		return "/v1/chat/completions"
	}
	return c.Endpoint
}

func (c RemoteConfig) timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c RemoteConfig) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 256
	}
	return c.MaxTokens
}

// RemoteEngine speaks the remote LLM NLU wire contract from spec §6: a
// chat-completion request whose system prompt enumerates every command,
// expecting the model to reply with a JSON object naming the chosen
// command, a confidence, and extracted params. The model behind the
// endpoint is an external collaborator (spec.md §1); this is the client
// half of its contract.
type RemoteEngine struct {
	cfg    RemoteConfig
	client *http.Client
}

// NewRemoteEngine creates a remote LLM NLU engine client.
func NewRemoteEngine(cfg RemoteConfig) *RemoteEngine {
	return &RemoteEngine{cfg: cfg, client: &http.Client{Timeout: cfg.timeout()}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// classification is the lenient shape of the model's JSON reply: numeric
// and boolean param values are accepted stringified or bare, per spec
// §6.
type classification struct {
	Command    string                 `json:"command"`
	Confidence float64                `json:"confidence"`
	Params     map[string]interface{} `json:"params"`
}

// Process implements Engine.
func (e *RemoteEngine) Process(transcript string, descriptors []command.CommandDescriptor) Result {
	if normalize(transcript) == "" || len(descriptors) == 0 {
		return Result{Success: false, Error: "nlu: empty transcript or no descriptors"}
	}

	prompt := buildSystemPrompt(descriptors)
	content, err := e.chat(prompt, transcript)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	cls, err := parseClassification(content)
	if err != nil {
		if e.cfg.EnableDebugLogging {
			astilog.Error(errors.Wrapf(err, "nlu: parsing classification %q failed", content))
		}
		return Result{Success: false, Error: err.Error()}
	}

	if cls.Command == "" {
		return Result{Success: false, Error: "nlu: model returned the empty-command sentinel"}
	}

	params := make(map[string]string, len(cls.Params))
	for k, v := range cls.Params {
		params[k] = stringifyParamValue(v)
	}

	return Result{
		Success:         true,
		CommandName:     cls.Command,
		Confidence:      cls.Confidence,
		ExtractedParams: params,
	}
}

func (e *RemoteEngine) chat(systemPrompt, transcript string) (string, error) {
	reqBody := chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: transcript},
		},
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.maxTokens(),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "nlu: marshaling chat request failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.timeout())
	defer cancel()

	url := fmt.Sprintf("%s%s", e.cfg.ServerURL, e.cfg.endpoint())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "nlu: building request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "nlu: request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "nlu: reading response body failed")
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", errors.Wrap(err, "nlu: unmarshaling chat response failed")
	}
	if len(out.Choices) == 0 {
		return "", errors.New("nlu: chat response had no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// buildSystemPrompt enumerates every descriptor in the exact numbered
// format spec §6 specifies, so the model sees each command's name,
// description, and parameter schema.
func buildSystemPrompt(descriptors []command.CommandDescriptor) string {
	var b strings.Builder
	b.WriteString("You are a voice command classifier. Choose the single best matching command " +
		"for the user's utterance, or respond with the empty-command sentinel if none match. " +
		"Respond with JSON only: {\"command\": string, \"confidence\": number, \"params\": object}.\n\n")

	for i, d := range descriptors {
		fmt.Fprintf(&b, "%d. %q - %s\n", i+1, d.Name, d.Description)
		for _, p := range d.Parameters {
			b.WriteString("  - ")
			b.WriteString(paramPromptLine(p))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func paramPromptLine(p command.ParamDescriptor) string {
	var b strings.Builder
	req := "optional"
	if p.Required {
		req = "required"
	}
	fmt.Fprintf(&b, "%s (%s, %s", p.Name, p.Type, req)
	if p.DefaultValue != "" {
		fmt.Fprintf(&b, ", default=%s", p.DefaultValue)
	}
	b.WriteString("): ")
	b.WriteString(p.Description)
	if p.MinValue != nil {
		fmt.Fprintf(&b, " min=%s", strconv.FormatFloat(*p.MinValue, 'g', -1, 64))
	}
	if p.MaxValue != nil {
		fmt.Fprintf(&b, " max=%s", strconv.FormatFloat(*p.MaxValue, 'g', -1, 64))
	}
	if len(p.EnumValues) > 0 {
		fmt.Fprintf(&b, " values: %s", strings.Join(p.EnumValues, ", "))
	}
	return b.String()
}

// parseClassification locates the first top-level {...} substring in
// content and parses it leniently, per spec §6 ("the consumer must
// locate the first {…} substring if the model emits surrounding text").
func parseClassification(content string) (classification, error) {
	start := strings.Index(content, "{")
	if start < 0 {
		return classification{}, errors.New("nlu: no JSON object found in model response")
	}
	end := matchingBraceEnd(content, start)
	if end < 0 {
		return classification{}, errors.New("nlu: unterminated JSON object in model response")
	}

	var cls classification
	if err := json.Unmarshal([]byte(content[start:end+1]), &cls); err != nil {
		return classification{}, errors.Wrap(err, "nlu: unmarshaling classification failed")
	}
	return cls, nil
}

// matchingBraceEnd returns the index of the brace matching the one at
// start, tracking nesting depth and skipping over quoted strings.
func matchingBraceEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// inside a string literal, braces don't count
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stringifyParamValue renders a decoded JSON value as the raw string
// command.ParamValue expects, per spec §6's "numeric and boolean param
// values are stringified" rule.
func stringifyParamValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
