package responses

// Doctor is the public directory projection. Email and credentials are
// never exposed here.
type Doctor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Image      string  `json:"image,omitempty"`
	Degree     string  `json:"degree,omitempty"`
	Experience string  `json:"experience,omitempty"`
	About      string  `json:"about,omitempty"`
	Fees       float64 `json:"fees"`
	Available  bool    `json:"available"`
}

type DoctorDashboard struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latest_appointments"`
}

type AdminDashboard struct {
	Doctors            int           `json:"doctors"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latest_appointments"`
}
