// Package flow implements the intake conversation state machine: the fixed
// question sequence, per-step validation, field extraction and transitions.
// The machine mutates only the session passed to it; all I/O (persistence,
// notification, messaging) stays with the orchestrator, which executes the
// effects the machine reports back.
package flow

import (
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"legal_intake_backend/internal/conversation/domain"
	"legal_intake_backend/internal/conversation/extract"
	"legal_intake_backend/internal/conversation/gate"
	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/phone"
	"legal_intake_backend/platform/sanitize"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var scriptYAML []byte

type stepConfig struct {
	Question string      `yaml:"question"`
	Error    string      `yaml:"error"`
	Next     domain.Step `yaml:"next"`
}

type script struct {
	Greeting          string                     `yaml:"greeting"`
	GenericError      string                     `yaml:"generic_error"`
	AreaKeywords      []string                   `yaml:"area_keywords"`
	ConfirmationWords []string                   `yaml:"confirmation_words"`
	Steps             map[domain.Step]stepConfig `yaml:"steps"`
}

// stepOrder is the fixed sequence exposed by the flow description endpoint.
var stepOrder = []domain.Step{
	domain.StepName,
	domain.StepContact,
	domain.StepArea,
	domain.StepDetails,
	domain.StepConfirmation,
	domain.StepPhoneCollection,
}

// Flow holds the parsed script and drives step transitions.
type Flow struct {
	script   script
	firmName string
}

// New parses the embedded script and returns a ready flow.
func New(cfg config.ConversationConfig) (*Flow, error) {
	var s script
	if err := yaml.Unmarshal(scriptYAML, &s); err != nil {
		return nil, fmt.Errorf("parse flow script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("flow script has no steps")
	}

	return &Flow{script: s, firmName: cfg.GetFirmName()}, nil
}

// Result reports what the orchestrator must do after one transition.
type Result struct {
	// Reply is the bot's next message. Empty only when Finalize is set,
	// in which case finalization produces the reply.
	Reply string
	// Invalid marks a validation failure; Reply carries the error text and
	// the session state was not advanced.
	Invalid bool
	// Finalize marks that the terminal step was reached and the
	// orchestrator must run lead finalization.
	Finalize bool
	// GateEvaluated is set when the notification gate ran for this turn;
	// Gate then carries the decision for the orchestrator to execute.
	GateEvaluated bool
	Gate          gate.Decision
}

// Advance applies one inbound message to the session.
func (f *Flow) Advance(s *domain.Session, message string) Result {
	trimmed := strings.TrimSpace(message)

	// The scripted first question short-circuits validation entirely.
	if s.FirstInteraction {
		s.FirstInteraction = false
		s.CurrentStep = domain.StepName
		return Result{Reply: f.Question(domain.StepName, s.LeadData)}
	}

	switch s.CurrentStep {
	case domain.StepGreeting:
		s.CurrentStep = domain.StepName
		return Result{Reply: f.Question(domain.StepName, s.LeadData)}

	case domain.StepCompleted:
		if !s.PhoneSubmitted && s.LeadData.Phone == "" {
			s.CurrentStep = domain.StepPhoneCollection
			return Result{Reply: f.Question(domain.StepPhoneCollection, s.LeadData)}
		}
		return Result{Reply: fmt.Sprintf(
			"Obrigado, %s! Nossa equipe já foi notificada e entrará em contato em breve. 😊",
			s.LeadData.FirstName(),
		)}

	case domain.StepPhoneCollection:
		if errMsg, ok := f.Validate(domain.StepPhoneCollection, trimmed); !ok {
			return Result{Invalid: true, Reply: errMsg}
		}
		s.LeadData.Phone = phone.Digits(trimmed)
		s.PhoneSubmitted = true
		s.CurrentStep = domain.StepCompleted
		return Result{Finalize: true}
	}

	cfg, known := f.script.Steps[s.CurrentStep]
	if !known {
		// Corrupted or unknown state self-heals back to the greeting.
		s.CurrentStep = domain.StepGreeting
		s.FirstInteraction = true
		return Result{Reply: f.Greeting(time.Now())}
	}

	if errMsg, ok := f.Validate(s.CurrentStep, trimmed); !ok {
		return Result{Invalid: true, Reply: errMsg}
	}

	f.writeField(s, trimmed)

	// The gate sees the updated answers but the pre-advance step.
	decision := gate.Evaluate(s)

	if cfg.Next == domain.StepCompleted {
		s.CurrentStep = domain.StepCompleted
		s.FlowCompleted = true
		return Result{Finalize: true, GateEvaluated: true, Gate: decision}
	}

	s.CurrentStep = cfg.Next
	return Result{
		Reply:         f.Question(cfg.Next, s.LeadData),
		GateEvaluated: true,
		Gate:          decision,
	}
}

// writeField stores the validated answer on the session.
func (f *Flow) writeField(s *domain.Session, answer string) {
	clean := sanitize.Text(answer)

	switch s.CurrentStep {
	case domain.StepName:
		s.LeadData.Identification = clean
	case domain.StepContact:
		s.LeadData.ContactInfo = clean
		if p, ok := extract.Phone(clean); ok {
			s.LeadData.Phone = p
		}
		if e, ok := extract.Email(clean); ok {
			s.LeadData.Email = e
		}
	case domain.StepArea:
		s.LeadData.AreaQualification = clean
	case domain.StepDetails:
		s.LeadData.CaseDetails = clean
	case domain.StepConfirmation:
		s.LeadData.Confirmation = clean
	}
}

// Validate checks the raw answer against the current step's rule.
// Returns the scripted error message and false on failure.
func (f *Flow) Validate(step domain.Step, answer string) (string, bool) {
	trimmed := strings.TrimSpace(answer)
	if utf8.RuneCountInString(trimmed) < 2 {
		return f.script.GenericError, false
	}

	stepErr := f.script.GenericError
	if cfg, ok := f.script.Steps[step]; ok && cfg.Error != "" {
		stepErr = cfg.Error
	}

	switch step {
	case domain.StepName:
		if len(strings.Fields(trimmed)) < 2 {
			return stepErr, false
		}
	case domain.StepContact:
		if !extract.HasPhone(trimmed) && !extract.HasEmail(trimmed) {
			return stepErr, false
		}
	case domain.StepArea:
		if !containsAny(trimmed, f.script.AreaKeywords) {
			return stepErr, false
		}
	case domain.StepDetails:
		if utf8.RuneCountInString(trimmed) < 15 {
			return stepErr, false
		}
	case domain.StepConfirmation:
		if !containsAny(trimmed, f.script.ConfirmationWords) {
			return stepErr, false
		}
	case domain.StepPhoneCollection:
		digits := phone.Digits(trimmed)
		if len(digits) < 10 || len(digits) > 13 {
			return stepErr, false
		}
	}

	return "", true
}

// Question returns the step's question with placeholders interpolated.
func (f *Flow) Question(step domain.Step, data domain.LeadData) string {
	cfg, ok := f.script.Steps[step]
	if !ok {
		return "Como posso ajudá-lo?"
	}
	return f.interpolate(cfg.Question, data)
}

// Greeting builds the scripted opening message, varying with time of day.
func (f *Flow) Greeting(now time.Time) string {
	var tod string
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		tod = "Bom dia"
	case hour >= 12 && hour < 18:
		tod = "Boa tarde"
	default:
		tod = "Boa noite"
	}

	msg := strings.ReplaceAll(f.script.Greeting, "{tod}", tod)
	return strings.ReplaceAll(msg, "{firm}", f.firmName)
}

func (f *Flow) interpolate(msg string, data domain.LeadData) string {
	if msg == "" {
		return "Como posso ajudá-lo?"
	}
	if name := data.FirstName(); name != "" {
		msg = strings.ReplaceAll(msg, "{user_name}", name)
	}
	if data.AreaQualification != "" {
		msg = strings.ReplaceAll(msg, "{area}", data.AreaQualification)
	}
	msg = strings.ReplaceAll(msg, "{firm}", f.firmName)
	return msg
}

// StepInfo describes one scripted step for the flow description endpoint.
type StepInfo struct {
	Step     domain.Step `json:"step"`
	Question string      `json:"question"`
	Next     domain.Step `json:"next_step"`
}

// Steps returns the scripted sequence in order.
func (f *Flow) Steps() []StepInfo {
	infos := make([]StepInfo, 0, len(stepOrder))
	for _, step := range stepOrder {
		cfg, ok := f.script.Steps[step]
		if !ok {
			continue
		}
		infos = append(infos, StepInfo{Step: step, Question: cfg.Question, Next: cfg.Next})
	}
	return infos
}

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
