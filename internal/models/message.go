package models

// LinkedInProfile is the input to personalized message generation. It is never persisted.
type LinkedInProfile struct {
	Name     string `json:"name" binding:"notblank"`
	JobTitle string `json:"job_title" binding:"notblank"`
	Company  string `json:"company" binding:"notblank"`
	Location string `json:"location" binding:"notblank"`
	Summary  string `json:"summary" binding:"notblank"`
}

// PersonalizedMessage is the generated outreach message
type PersonalizedMessage struct {
	Message string `json:"message"`
}
