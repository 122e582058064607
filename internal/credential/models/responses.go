package models

import "time"

// IssueResponse confirms an issuance to the caller.
type IssueResponse struct {
	Message      string    `json:"message"`
	Worker       string    `json:"worker"`
	CredentialID string    `json:"credentialId"`
	Timestamp    time.Time `json:"timestamp"`
}

// VerifyResponse reports a successful lookup. Worker and Timestamp are the
// ones recorded at issuance time, not at verification time.
type VerifyResponse struct {
	Status     string    `json:"status"`
	Worker     string    `json:"worker"`
	Timestamp  time.Time `json:"timestamp"`
	Credential Document  `json:"credential"`
}

// NotFoundResponse reports a lookup miss. A miss is a normal outcome, not an
// internal failure, so it carries a structured status instead of a bare error.
type NotFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
