package domain

import "time"

// Location is a WGS-84 point with an optional street address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	ZipCode string  `json:"zip_code,omitempty"`
}

// Contact holds a department's public contact details.
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website,omitempty"`
	Chief   string `json:"chief,omitempty"`
}

// Department is a fire and/or EMS agency. Counts and budget always fall in
// the range for Size.
type Department struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Type           string    `json:"type"`
	Size           string    `json:"size"`
	ServiceArea    string    `json:"service_area"`
	StationCount   int       `json:"station_count"`
	PersonnelCount int       `json:"personnel_count"`
	VehicleCount   int       `json:"vehicle_count"`
	AnnualBudget   int64     `json:"annual_budget"`
	Contact        Contact   `json:"contact"`
	Location       Location  `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Staffing describes how a station is crewed.
type Staffing struct {
	Model             string `json:"model"`
	Shifts            int    `json:"shifts"`
	PersonnelPerShift int    `json:"personnel_per_shift"`
	TotalPersonnel    int    `json:"total_personnel"`
	MinimumStaffing   int    `json:"minimum_staffing"`
}

// Apparatus is a vehicle assigned to a station. Capabilities and CrewSize are
// fixed by Type.
type Apparatus struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Designation  string   `json:"designation"`
	Status       string   `json:"status"`
	Year         int      `json:"year"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Capabilities []string `json:"capabilities"`
	CrewSize     int      `json:"crew_size"`
}

// Station is a fire or EMS station belonging to a department.
type Station struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	StationNumber  int         `json:"station_number"`
	DepartmentID   string      `json:"department_id"`
	Type           string      `json:"type"`
	Staffing       Staffing    `json:"staffing"`
	Location       Location    `json:"location"`
	Apparatus      []Apparatus `json:"apparatus"`
	AreaServedSqMi float64     `json:"area_served_sq_mi"`
	BuiltYear      int         `json:"built_year"`
	Features       []string    `json:"features"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// User is an application account tied to a department.
type User struct {
	ID             string     `json:"id"`
	DepartmentID   string     `json:"department_id"`
	StationID      string     `json:"station_id,omitempty"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           string     `json:"role"`
	Rank           string     `json:"rank"`
	Phone          string     `json:"phone"`
	Permissions    []string   `json:"permissions"`
	Certifications []string   `json:"certifications"`
	IsActive       bool       `json:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CallerInfo identifies the person who reported an incident.
type CallerInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// IncidentTimes are the incident-level milestones. Enroute and Arrived belong
// to the first unit, Cleared to the last.
type IncidentTimes struct {
	Received   time.Time `json:"received"`
	Dispatched time.Time `json:"dispatched"`
	Enroute    time.Time `json:"enroute"`
	Arrived    time.Time `json:"arrived"`
	Cleared    time.Time `json:"cleared"`
}

// Unit is one apparatus responding to an incident.
type Unit struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Dispatched time.Time `json:"dispatched"`
	Enroute    time.Time `json:"enroute"`
	Arrived    time.Time `json:"arrived"`
	Cleared    time.Time `json:"cleared"`
}

// Incident is a single call for service.
type Incident struct {
	ID           string        `json:"id"`
	DepartmentID string        `json:"department_id"`
	StationID    string        `json:"station_id,omitempty"`
	CallNumber   string        `json:"call_number"`
	Type         string        `json:"type"`
	Category     string        `json:"category"`
	Priority     int           `json:"priority"`
	Location     Location      `json:"location"`
	CallerInfo   CallerInfo    `json:"caller_info"`
	Times        IncidentTimes `json:"times"`
	Units        []Unit        `json:"units"`
	Outcome      string        `json:"outcome"`
	Notes        string        `json:"notes"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ResponseTime is the interval from call receipt to first unit on scene.
func (i Incident) ResponseTime() time.Duration {
	return i.Times.Arrived.Sub(i.Times.Received)
}
