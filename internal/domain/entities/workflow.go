package entities

// WorkflowState is the current step of a session's journey
type WorkflowState string

const (
	StateLogin     WorkflowState = "login"
	StateLocation  WorkflowState = "location"
	StateSymptoms  WorkflowState = "symptoms"
	StateAnalyzing WorkflowState = "analyzing"
	StateResult    WorkflowState = "result"
	StateBooking   WorkflowState = "booking"
	StateConfirmed WorkflowState = "confirmed"
	StateAdmin     WorkflowState = "admin"
)

// IsValid checks if the state is one of the defined constants
func (s WorkflowState) IsValid() bool {
	switch s {
	case StateLogin, StateLocation, StateSymptoms, StateAnalyzing,
		StateResult, StateBooking, StateConfirmed, StateAdmin:
		return true
	}
	return false
}

// UserStep returns the position of the state on the user progress bar
// (location=0 .. confirmed=4). Analyzing shares the symptoms step.
// Login and admin are off the bar and return -1.
func (s WorkflowState) UserStep() int {
	switch s {
	case StateLocation:
		return 0
	case StateSymptoms, StateAnalyzing:
		return 1
	case StateResult:
		return 2
	case StateBooking:
		return 3
	case StateConfirmed:
		return 4
	}
	return -1
}

// WorkflowEvent triggers a transition between workflow states
type WorkflowEvent string

const (
	EventUserLogin       WorkflowEvent = "user_login"
	EventAdminLogin      WorkflowEvent = "admin_login"
	EventConfirmLocation WorkflowEvent = "confirm_location"
	EventAnalyze         WorkflowEvent = "analyze"
	EventDiagnosisReady  WorkflowEvent = "diagnosis_ready"
	EventChooseProvider  WorkflowEvent = "choose_provider"
	EventConfirmBooking  WorkflowEvent = "confirm_booking"
	EventBack            WorkflowEvent = "back"
	EventReset           WorkflowEvent = "reset"
)
