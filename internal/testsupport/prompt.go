package testsupport

import (
	"context"
	"errors"
	"sync"
)

// ErrScriptExhausted is returned when a scripted prompter runs out of answers.
var ErrScriptExhausted = errors.New("scripted prompter: no answers left")

// ScriptedPrompter replays canned answers and records every question.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []string
	confirms  []bool
	Questions []string
}

// NewScriptedPrompter returns a prompter that answers Ask with answers and
// Confirm with confirms, in order.
func NewScriptedPrompter(answers []string, confirms []bool) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers, confirms: confirms}
}

// Ask returns the next scripted answer.
func (p *ScriptedPrompter) Ask(_ context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return "", ErrScriptExhausted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Confirm returns the next scripted yes/no answer.
func (p *ScriptedPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.confirms) == 0 {
		return false, ErrScriptExhausted
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}
