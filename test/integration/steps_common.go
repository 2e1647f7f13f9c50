package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	tokens       map[string]string
	vars         map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		tokens: make(map[string]string),
		vars:   make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.response = nil
		s.responseBody = nil
		s.tokens = make(map[string]string)
		s.vars = make(map[string]string)
		return ctx, s.tc.Reset()
	})

	// Background steps
	sc.Step(`^a shiplog server is running$`, s.aShiplogServerIsRunning)

	// Credential steps
	sc.Step(`^"([^"]*)" registers with password "([^"]*)"$`, s.userRegisters)
	sc.Step(`^"([^"]*)" logs in with password "([^"]*)"$`, s.userLogsIn)
	sc.Step(`^"([^"]*)" is registered with password "([^"]*)"$`, s.userIsRegistered)

	// Request steps
	sc.Step(`^"([^"]*)" sends a (GET|DELETE) request to "([^"]*)"$`, s.userSendsRequest)
	sc.Step(`^"([^"]*)" sends a (POST|PUT) request to "([^"]*)" with body:$`, s.userSendsRequestWithBody)
	sc.Step(`^I send a GET request to "([^"]*)" without a token$`, s.iSendAnonymousRequest)
	sc.Step(`^I send a GET request to "([^"]*)" with authorization "([^"]*)"$`, s.iSendRequestWithAuthorization)
	sc.Step(`^I remember the response data "([^"]*)" as "([^"]*)"$`, s.iRememberResponseData)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should receive a token$`, s.iShouldReceiveAToken)
	sc.Step(`^the response JSON "([^"]*)" should be "([^"]*)"$`, s.theResponseJSONShouldBe)
	sc.Step(`^the response data should have (\d+) items?$`, s.theResponseDataShouldHaveItems)
	sc.Step(`^the response body should contain "([^"]*)"$`, s.theResponseBodyShouldContain)
}

func (s *StepsContext) aShiplogServerIsRunning() error {
	return s.tc.waitForServer(5, 0)
}

func (s *StepsContext) userRegisters(username, password string) error {
	if err := s.postCredentials("/user/new-user", username, password); err != nil {
		return err
	}
	return s.captureToken(username)
}

func (s *StepsContext) userLogsIn(username, password string) error {
	if err := s.postCredentials("/user/login", username, password); err != nil {
		return err
	}
	return s.captureToken(username)
}

func (s *StepsContext) userIsRegistered(username, password string) error {
	if err := s.userRegisters(username, password); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registering %q returned %d: %s", username, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) postCredentials(path, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	return s.send(http.MethodPost, path, bytes.NewReader(body), "")
}

func (s *StepsContext) captureToken(username string) error {
	if s.response.StatusCode >= 300 {
		return nil
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}
	s.tokens[username] = out.Token
	return nil
}

func (s *StepsContext) userSendsRequest(username, method, path string) error {
	return s.send(method, s.expand(path), nil, s.bearer(username))
}

func (s *StepsContext) userSendsRequestWithBody(username, method, path string, body *godog.DocString) error {
	return s.send(method, s.expand(path), strings.NewReader(s.expand(body.Content)), s.bearer(username))
}

func (s *StepsContext) iSendAnonymousRequest(path string) error {
	return s.send(http.MethodGet, s.expand(path), nil, "")
}

func (s *StepsContext) iSendRequestWithAuthorization(path, header string) error {
	return s.send(http.MethodGet, s.expand(path), nil, header)
}

func (s *StepsContext) iRememberResponseData(field, name string) error {
	value, err := s.lookup("data." + field)
	if err != nil {
		return err
	}
	s.vars[name] = fmt.Sprint(value)
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.response == nil {
		return fmt.Errorf("no request has been sent")
	}
	if s.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) iShouldReceiveAToken() error {
	value, err := s.lookup("token")
	if err != nil {
		return err
	}
	raw, _ := value.(string)
	if strings.Count(raw, ".") != 2 {
		return fmt.Errorf("expected a JWT, got %q", raw)
	}
	return nil
}

func (s *StepsContext) theResponseJSONShouldBe(path, expected string) error {
	value, err := s.lookup(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != s.expand(expected) {
		return fmt.Errorf("expected %s to be %q, got %q", path, s.expand(expected), got)
	}
	return nil
}

func (s *StepsContext) theResponseDataShouldHaveItems(count int) error {
	value, err := s.lookup("data")
	if err != nil {
		return err
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("expected data to be a list, got %T", value)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d", count, len(items))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldContain(text string) error {
	if !bytes.Contains(s.responseBody, []byte(s.expand(text))) {
		return fmt.Errorf("expected body to contain %q, got: %s", text, s.responseBody)
	}
	return nil
}

func (s *StepsContext) send(method, path string, body io.Reader, authorization string) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) bearer(username string) string {
	tok, ok := s.tokens[username]
	if !ok {
		return ""
	}
	return "Bearer " + tok
}

// expand replaces {name} placeholders with remembered values.
func (s *StepsContext) expand(text string) string {
	for name, value := range s.vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// lookup walks a dotted path through the JSON response body.
func (s *StepsContext) lookup(path string) (interface{}, error) {
	var current interface{}
	if err := json.Unmarshal(s.responseBody, &current); err != nil {
		return nil, fmt.Errorf("response is not JSON: %s", s.responseBody)
	}
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot read %q from %T", key, current)
		}
		current, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("response has no field %q", path)
		}
	}
	return current, nil
}
