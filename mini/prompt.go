package mini

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errInterrupted is returned by a prompter when the user pressed Ctrl+C.
var errInterrupted = errors.New("interrupted")

type prompter interface {
	// Select returns the index of the chosen option.
	Select(title string, options []string) (int, error)
	// Input reads a line. suggest may be nil.
	Input(title string, suggest func(string) []string) (string, error)
}

type surveyPrompter struct {
	pageSize int
}

func (p *surveyPrompter) Select(title string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  title,
		Options:  options,
		PageSize: p.pageSize,
	}, &index)
	return index, interrupted(err)
}

func (p *surveyPrompter) Input(title string, suggest func(string) []string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{
		Message: title,
		Suggest: suggest,
	}, &answer)
	return answer, interrupted(err)
}

func interrupted(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errInterrupted
	}
	return err
}
