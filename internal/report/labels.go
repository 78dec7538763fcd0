package report

import "fmt"

// StateLabeler names cell states for headers and legends.
type StateLabeler interface {
	Label(state int) string
}

type defaultLabeler struct{}

func (defaultLabeler) Label(state int) string {
	return fmt.Sprintf("State %d", state)
}

func labelerOrDefault(l StateLabeler) StateLabeler {
	if l == nil {
		return defaultLabeler{}
	}
	return l
}
