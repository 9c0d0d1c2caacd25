package notify

import (
	"errors"
	"fmt"
)

// Class groups delivery failures by cause.
type Class int

const (
	// Transport means the service could not be reached.
	Transport Class = iota
	// Rejected means the service answered but refused the message.
	Rejected
	// Malformed means the response body could not be understood.
	Malformed
	// Timeout means no answer arrived before the deadline.
	Timeout
)

func (c Class) String() string {
	switch c {
	case Transport:
		return "transport"
	case Rejected:
		return "rejected"
	case Malformed:
		return "malformed"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// DeliveryError describes a failed Send. Message is suitable for showing to
// the person who filled the wizard.
type DeliveryError struct {
	Class   Class
	Status  int // HTTP status, 0 when no response arrived
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of err, or Transport when err is not a
// DeliveryError.
func ClassOf(err error) Class {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Class
	}
	return Transport
}

// Generic descriptions used when the service gives no reason of its own.
const (
	msgTransport = "could not reach the notification service"
	msgMalformed = "the notification service sent an invalid response"
	msgRejected  = "the notification service rejected the message"
	msgTimeout   = "the notification service did not answer in time"
)
