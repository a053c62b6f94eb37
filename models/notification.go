package models

// PushNotification is a message delivered to a device through FCM.
type PushNotification struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// HearingReminderPayload is the body of a scheduled hearing reminder task.
type HearingReminderPayload struct {
	UserID      string `json:"userId"`
	CaseID      string `json:"caseId"`
	HearingDate string `json:"hearingDate"` // RFC3339
}
