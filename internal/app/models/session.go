package models

import "medipoint-service/internal/pkg/constvars"

// Session is the payload stored in redis under the session id carried by the
// JWT. The identity service writes it at login; this service only reads it.
type Session struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (s *Session) IsPatient() bool {
	return s.Role == constvars.RolePatient
}

func (s *Session) IsDoctor() bool {
	return s.Role == constvars.RoleDoctor
}

func (s *Session) IsAdmin() bool {
	return s.Role == constvars.RoleAdmin
}
