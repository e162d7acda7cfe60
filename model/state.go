package model

import "fmt"

// RequestStatus is a view request lifecycle step.
type RequestStatus int

const (
	IdleStatus RequestStatus = iota
	LoadingStatus
	SucceededStatus
	FailedStatus
)

// String implements the stringer interface.
func (s RequestStatus) String() string {
	switch s {
	case IdleStatus:
		return "idle"
	case LoadingStatus:
		return "loading"
	case SucceededStatus:
		return "succeeded"
	case FailedStatus:
		return "failed"
	}

	return fmt.Sprintf("unknown(%d)", int(s))
}

// RequestState tracks a view request: Idle -> Loading -> {Succeeded, Failed}.
// Message is the inline error to show, it stays empty for fatal failures.
type RequestState struct {
	Status  RequestStatus
	Message string
}

// Begin enters Loading, the previous message is kept until the request resolves.
func (s *RequestState) Begin() {
	s.Status = LoadingStatus
}

// Succeed resolves the request.
func (s *RequestState) Succeed() {
	s.Status = SucceededStatus
	s.Message = ""
}

// Fail resolves the request with an inline message.
func (s *RequestState) Fail(message string) {
	s.Status = FailedStatus
	s.Message = message
}

// Loading reports whether a request is in flight.
func (s RequestState) Loading() bool {
	return s.Status == LoadingStatus
}
