package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	lastID       int64
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an inventory server is running$`, s.anInventoryServerIsRunning)
	sc.Step(`^the inventory is empty$`, s.theInventoryIsEmpty)

	// Request steps
	sc.Step(`^I add an object with:$`, s.iAddAnObjectWith)
	sc.Step(`^I add an object with serial "([^"]*)" and name "([^"]*)"$`, s.iAddAnObjectWithSerialAndName)
	sc.Step(`^I add an object with serial "([^"]*)" and name "([^"]*)" under the last object$`, s.iAddAnObjectUnderTheLastObject)
	sc.Step(`^I send a raw add request with body "([^"]*)"$`, s.iSendARawAddRequest)
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response body should be "([^"]*)"$`, s.theResponseBodyShouldBe)
	sc.Step(`^the response JSON should be:$`, s.theResponseJSONShouldBe)
	sc.Step(`^the error message should be "([^"]*)"$`, s.theErrorMessageShouldBe)
	sc.Step(`^the inventory should contain (\d+) objects? and (\d+) relationships?$`, s.theInventoryShouldContain)
}

func (s *StepsContext) anInventoryServerIsRunning() error {
	resp, err := s.tc.HTTPClient.Get(s.tc.ServerURL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server is not healthy: status %d", resp.StatusCode)
	}
	return nil
}

func (s *StepsContext) theInventoryIsEmpty() error {
	s.lastID = 0
	return s.tc.Reset()
}

func (s *StepsContext) iAddAnObjectWith(body *godog.DocString) error {
	return s.post("/api/add_object", []byte(body.Content))
}

func (s *StepsContext) iAddAnObjectWithSerialAndName(serial, name string) error {
	body, err := json.Marshal(map[string]string{"serial": serial, "name": name})
	if err != nil {
		return err
	}
	return s.post("/api/add_object", body)
}

func (s *StepsContext) iAddAnObjectUnderTheLastObject(serial, name string) error {
	if s.lastID == 0 {
		return fmt.Errorf("no object has been added yet")
	}
	body, err := json.Marshal(map[string]interface{}{"serial": serial, "name": name, "parent_id": s.lastID})
	if err != nil {
		return err
	}
	return s.post("/api/add_object", body)
}

func (s *StepsContext) iSendARawAddRequest(body string) error {
	return s.post("/api/add_object", []byte(body))
}

func (s *StepsContext) iGET(path string) error {
	resp, err := s.tc.HTTPClient.Get(s.tc.ServerURL + path)
	if err != nil {
		return err
	}
	return s.capture(resp)
}

func (s *StepsContext) post(path string, body []byte) error {
	resp, err := s.tc.HTTPClient.Post(s.tc.ServerURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	if err := s.capture(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusOK {
		var created struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &created); err == nil {
			s.lastID = created.ID
		}
	}
	return nil
}

func (s *StepsContext) capture(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()
	s.response = resp
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.responseBody = body
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldBe(expected string) error {
	actual := strings.TrimSpace(string(s.responseBody))
	if actual != expected {
		return fmt.Errorf("expected body %q, got %q", expected, actual)
	}
	return nil
}

func (s *StepsContext) theResponseJSONShouldBe(expected *godog.DocString) error {
	var want, got interface{}
	if err := json.Unmarshal([]byte(expected.Content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := json.Unmarshal(s.responseBody, &got); err != nil {
		return fmt.Errorf("response is not JSON: %w: %s", err, string(s.responseBody))
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected JSON %s, got %s", strings.TrimSpace(expected.Content), string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theErrorMessageShouldBe(expected string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not JSON: %w: %s", err, string(s.responseBody))
	}
	if body.Error != expected {
		return fmt.Errorf("expected error %q, got %q", expected, body.Error)
	}
	return nil
}

func (s *StepsContext) theInventoryShouldContain(objects, relationships int) error {
	var objectCount, relationshipCount int64
	if err := s.tc.DB.Table("objects").Count(&objectCount).Error; err != nil {
		return err
	}
	if err := s.tc.DB.Table("relationships").Count(&relationshipCount).Error; err != nil {
		return err
	}
	if objectCount != int64(objects) || relationshipCount != int64(relationships) {
		return fmt.Errorf("expected %d objects and %d relationships, got %d and %d",
			objects, relationships, objectCount, relationshipCount)
	}
	return nil
}
