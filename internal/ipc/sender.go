package ipc

// Sender delivers messages without waiting for, or reporting, the outcome.
type Sender interface {
	Send(msg Message)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(msg Message)

func (f SenderFunc) Send(msg Message) { f(msg) }

// Discard drops every message.
var Discard Sender = SenderFunc(func(Message) {})

// Tee sends each message to every non-nil sender in order.
func Tee(senders ...Sender) Sender {
	out := make([]Sender, 0, len(senders))
	for _, s := range senders {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return SenderFunc(func(msg Message) {
		for _, s := range out {
			s.Send(msg)
		}
	})
}
