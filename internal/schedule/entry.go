package schedule

import (
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cue-cli/internal/model"
)

var (
	durationKeystrokes = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)
	durationLiteral    = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)$`)
)

// IsDurationInput reports whether s may be typed into a minutes field.
// Partial literals such as "" or "12." are admitted.
func IsDurationInput(s string) bool {
	return durationKeystrokes.MatchString(s)
}

// Entry is the single-task form: a name and a duration in minutes.
type Entry struct {
	Name    string
	Minutes string
}

func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Minutes, validation.Required, validation.Match(durationLiteral)),
	)
}

// Task converts the entry into a task whose duration is in seconds.
func (e Entry) Task() (model.Task, error) {
	if err := e.Validate(); err != nil {
		return model.Task{}, err
	}
	minutes, err := strconv.ParseFloat(e.Minutes, 64)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{Name: e.Name, Duration: minutes * 60}, nil
}
