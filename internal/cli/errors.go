package cli

import "fmt"

type invalidArgError struct {
	name   string
	value  string
	reason string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.name, e.value, e.reason)
}

func errInvalidArg(name, value, reason string) error {
	return invalidArgError{name: name, value: value, reason: reason}
}

type emptyScheduleError struct {
	source string
}

func (e emptyScheduleError) Error() string {
	return fmt.Sprintf("no schedule in %s", e.source)
}

func errEmptySchedule(source string) error {
	return emptyScheduleError{source: source}
}
