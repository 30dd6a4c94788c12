package order

type Status string

const (
	StatusWaiting      Status = "Waiting"
	StatusAccept       Status = "ACCEPT"
	StatusUnderProcess Status = "UNDER-PROCESS"
	StatusReady        Status = "READY"
	StatusReject       Status = "REJECT"
)

var validNext = map[Status]map[Status]bool{
	StatusWaiting:      {StatusAccept: true, StatusReject: true},
	StatusAccept:       {StatusUnderProcess: true, StatusReject: true},
	StatusUnderProcess: {StatusReady: true},
	StatusReady:        {},
	StatusReject:       {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
