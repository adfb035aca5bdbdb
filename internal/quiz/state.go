package quiz

// NoQuestion marks the absence of a current question
const NoQuestion = -1

// State is the mutable progress of one quiz session
type State struct {
	Correct int
	Wrong   int
	Used    IndexSet
	Current int
}

// NewState returns a fresh session with no current question
func NewState() State {
	return State{Current: NoQuestion}
}

// HasCurrent reports whether a question is being shown
func (s State) HasCurrent() bool {
	return s.Current != NoQuestion
}

// Attempts is the number of graded answers
func (s State) Attempts() int {
	return s.Correct + s.Wrong
}

// QuestionNumber is the attempt counter shown to the user
func (s State) QuestionNumber() int {
	return s.Attempts()
}

// Clone returns a copy that shares nothing with s
func (s State) Clone() State {
	s.Used = s.Used.Clone()
	return s
}
