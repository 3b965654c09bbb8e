// Package command describes the keyboard commands and collects their input
// without blocking the frame loop.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrUnknownCommand = errors.New("command: unknown command")

// Prompt asks for one line of input.
type Prompt struct {
	Label   string
	Default string
}

// Command is a single-key action.
type Command struct {
	Key     rune
	Name    string
	Help    string
	Prompts []Prompt
}

var thetaPrompt = Prompt{Label: "enter theta(s): ", Default: "0"}

// Commands lists the keyboard commands in help order.
var Commands = []Command{
	{Key: 'g', Name: "focus", Help: "switch orbit controls between main view and minimap"},
	{Key: 'h', Name: "controls", Help: "enable or disable orbit controls"},
	{Key: 'a', Name: "latitudes", Help: "add fibers along latitude circles",
		Prompts: []Prompt{thetaPrompt}},
	{Key: 'b', Name: "arcs", Help: "add fibers along latitude arcs up to a cutoff",
		Prompts: []Prompt{thetaPrompt, {Label: "enter cutoff angle: ", Default: strconv.FormatFloat(2*math.Pi, 'g', -1, 64)}}},
	{Key: 'c', Name: "rotated", Help: "add fibers along a rotated great circle",
		Prompts: []Prompt{{Label: "enter theta, phi, gamma: ", Default: "0, 0, 0"}}},
	{Key: 'd', Name: "clear", Help: "remove every fiber"},
}

// Lookup finds the command bound to key, case-insensitively.
func Lookup(key rune) (Command, error) {
	k := strings.ToLower(string(key))
	for _, c := range Commands {
		if string(c.Key) == k {
			return c, nil
		}
	}
	return Command{}, fmt.Errorf("%q: %w", key, ErrUnknownCommand)
}

// NeedsInput reports whether the command prompts before running.
func (c Command) NeedsInput() bool { return len(c.Prompts) > 0 }

// Begin starts collecting the command's input.
func (c Command) Begin() *Pending {
	return &Pending{Command: c}
}

// Pending is a command waiting for its prompts to be answered.
type Pending struct {
	Command   Command
	answers   []string
	cancelled bool
}

// Current returns the prompt awaiting an answer.
func (p *Pending) Current() (Prompt, bool) {
	if p.Done() {
		return Prompt{}, false
	}
	return p.Command.Prompts[len(p.answers)], true
}

// Answer records text for the current prompt and reports whether every prompt
// has now been answered.
func (p *Pending) Answer(text string) bool {
	if !p.Done() {
		p.answers = append(p.answers, text)
	}
	return p.Done()
}

// Cancel abandons the command.
func (p *Pending) Cancel() { p.cancelled = true }

func (p *Pending) Done() bool {
	return p.cancelled || len(p.answers) >= len(p.Command.Prompts)
}

func (p *Pending) Cancelled() bool { return p.cancelled }

// Answers returns the collected answers in prompt order.
func (p *Pending) Answers() []string {
	out := make([]string, len(p.answers))
	copy(out, p.answers)
	return out
}
