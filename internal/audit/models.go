package audit

import "time"

// Event is emitted from domain services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    Action            `json:"action"`
	Entity    string            `json:"entity"`
	EntityID  string            `json:"entity_id"`
	Actor     string            `json:"actor,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Action names the domain operation that produced an event.
type Action string

const (
	ActionQuestionnaireCreated   Action = "questionnaire.created"
	ActionQuestionnaireSubmitted Action = "questionnaire.submitted_for_review"
	ActionQuestionnaireValidated Action = "questionnaire.validated"
	ActionQuestionnairePublished Action = "questionnaire.published"
	ActionQuestionnaireArchived  Action = "questionnaire.archived"
	ActionQuestionnaireSuspended Action = "questionnaire.suspended"
	ActionQuestionnaireUsed      Action = "questionnaire.used"
	ActionQuestionCreated        Action = "question.created"
	ActionInterviewScheduled     Action = "interview.scheduled"
	ActionInterviewStarted       Action = "interview.started"
	ActionInterviewCompleted     Action = "interview.completed"
	ActionInterviewCancelled     Action = "interview.cancelled"
	ActionInterviewPostponed     Action = "interview.postponed"
	ActionProducteurCreated      Action = "producteur.created"
	ActionProducteurVerified     Action = "producteur.verified"
	ActionProducteurRejected     Action = "producteur.rejected"
)
