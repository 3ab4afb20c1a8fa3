package timer

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}
