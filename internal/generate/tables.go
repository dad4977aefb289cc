package generate

import "github.com/couchcryptid/fireems-testdata/internal/domain"

// city anchors departments that are generated without an explicit location.
type city struct {
	Name     string
	State    string
	AreaCode int
	Lat      float64
	Lon      float64
}

var cities = []Choice[city]{
	{city{"Denver", "CO", 303, 39.7392, -104.9903}, 1},
	{city{"Austin", "TX", 512, 30.2672, -97.7431}, 1},
	{city{"Phoenix", "AZ", 602, 33.4484, -112.0740}, 1},
	{city{"Columbus", "OH", 614, 39.9612, -82.9988}, 1},
	{city{"Sacramento", "CA", 916, 38.5816, -121.4944}, 1},
	{city{"Raleigh", "NC", 919, 35.7796, -78.6382}, 1},
	{city{"Boise", "ID", 208, 43.6150, -116.2023}, 1},
	{city{"Madison", "WI", 608, 43.0731, -89.4012}, 1},
	{city{"Tulsa", "OK", 918, 36.1540, -95.9928}, 1},
	{city{"Spokane", "WA", 509, 47.6588, -117.4260}, 1},
}

var departmentTypes = []Choice[string]{
	{"Fire Department", 30},
	{"EMS Agency", 15},
	{"Combined Fire/EMS", 40},
	{"Volunteer Fire", 10},
	{"Fire District", 5},
}

// departmentNameFormats pairs with departmentTypes by type.
var departmentNameFormats = map[string]string{
	"Fire Department":   "%s Fire Department",
	"EMS Agency":        "%s Emergency Medical Services",
	"Combined Fire/EMS": "%s Fire Rescue",
	"Volunteer Fire":    "%s Volunteer Fire Company",
	"Fire District":     "%s Fire Protection District",
}

var departmentSizes = []Choice[string]{
	{domain.SizeSmall, 40},
	{domain.SizeMedium, 35},
	{domain.SizeLarge, 20},
	{domain.SizeMetro, 5},
}

var serviceAreas = []Choice[string]{
	{"Urban", 30},
	{"Suburban", 35},
	{"Rural", 20},
	{"Mixed", 10},
	{"Wildland-Urban Interface", 5},
}

var stationTypes = []Choice[string]{
	{domain.StationFire, 35},
	{domain.StationEMS, 15},
	{domain.StationCombined, 30},
	{domain.StationVolunteer, 12},
	{domain.StationHeadquarters, 8},
}

var staffingModels = []Choice[string]{
	{domain.StaffingCareer, 50},
	{domain.StaffingCombination, 25},
	{domain.StaffingVolunteer, 20},
	{domain.StaffingPaidOnCall, 5},
}

// apparatusPlan is the composition rule for one station type: the required
// units always present plus a bounded number of weighted extras.
type apparatusPlan struct {
	Required  []string
	Extras    []Choice[string]
	MinExtras int
	MaxExtras int
}

var apparatusPlans = map[string]apparatusPlan{
	domain.StationFire: {
		Required:  []string{domain.ApparatusEngine},
		Extras:    []Choice[string]{{domain.ApparatusLadder, 3}, {domain.ApparatusTanker, 2}, {domain.ApparatusBrush, 2}, {domain.ApparatusRescue, 1}},
		MaxExtras: 2,
	},
	domain.StationEMS: {
		Required:  []string{domain.ApparatusAmbulance},
		Extras:    []Choice[string]{{domain.ApparatusAmbulance, 5}, {domain.ApparatusRescue, 1}},
		MaxExtras: 2,
	},
	domain.StationCombined: {
		Required:  []string{domain.ApparatusEngine, domain.ApparatusAmbulance},
		Extras:    []Choice[string]{{domain.ApparatusLadder, 2}, {domain.ApparatusAmbulance, 2}, {domain.ApparatusRescue, 2}, {domain.ApparatusBrush, 1}},
		MaxExtras: 2,
	},
	domain.StationVolunteer: {
		Required:  []string{domain.ApparatusEngine},
		Extras:    []Choice[string]{{domain.ApparatusTanker, 3}, {domain.ApparatusBrush, 3}},
		MaxExtras: 1,
	},
	domain.StationHeadquarters: {
		Required:  []string{domain.ApparatusEngine, domain.ApparatusLadder, domain.ApparatusAmbulance, domain.ApparatusCommand},
		Extras:    []Choice[string]{{domain.ApparatusRescue, 3}, {domain.ApparatusHazMat, 2}, {domain.ApparatusEngine, 2}, {domain.ApparatusAmbulance, 2}},
		MinExtras: 1,
		MaxExtras: 3,
	},
}

var apparatusStatuses = []Choice[string]{
	{"In Service", 85},
	{"Reserve", 10},
	{"Out of Service", 5},
}

type makeModel struct {
	Make  string
	Model string
}

var apparatusMakes = map[string][]Choice[makeModel]{
	domain.ApparatusEngine:    {{makeModel{"Pierce", "Enforcer"}, 4}, {makeModel{"E-ONE", "Cyclone"}, 3}, {makeModel{"Spartan", "Gladiator"}, 2}, {makeModel{"Rosenbauer", "Commander"}, 1}},
	domain.ApparatusLadder:    {{makeModel{"Pierce", "Ascendant"}, 3}, {makeModel{"E-ONE", "HP 100"}, 2}, {makeModel{"Sutphen", "SL 75"}, 1}},
	domain.ApparatusAmbulance: {{makeModel{"Horton", "Type I"}, 3}, {makeModel{"Wheeled Coach", "Type III"}, 3}, {makeModel{"Braun", "Chief XL"}, 2}},
	domain.ApparatusRescue:    {{makeModel{"Pierce", "Heavy Rescue"}, 2}, {makeModel{"SVI", "Walk-in Rescue"}, 1}},
	domain.ApparatusHazMat:    {{makeModel{"SVI", "HazMat 30"}, 1}, {makeModel{"Pierce", "Hazmat Response"}, 1}},
	domain.ApparatusTanker:    {{makeModel{"KME", "Tanker 3000"}, 2}, {makeModel{"Rosenbauer", "Tanker"}, 1}},
	domain.ApparatusBrush:     {{makeModel{"Ford", "F-550 Brush"}, 2}, {makeModel{"BME", "Type 6"}, 1}},
	domain.ApparatusCommand:   {{makeModel{"Chevrolet", "Tahoe"}, 2}, {makeModel{"Ford", "Expedition"}, 2}},
}

var stationFeatures = []Choice[string]{
	{"Training Room", 6},
	{"Decontamination Room", 4},
	{"Fitness Center", 5},
	{"Drive-through Bays", 5},
	{"Emergency Generator", 7},
	{"Living Quarters", 6},
	{"Community Room", 3},
	{"Hose Tower", 2},
	{"Solar Panels", 1},
	{"Exhaust Capture System", 4},
}

var stationStatuses = []Choice[string]{
	{"Active", 95},
	{"Under Renovation", 5},
}

var userRoles = []Choice[string]{
	{"admin", 5},
	{"manager", 15},
	{"user", 60},
	{"viewer", 20},
}

var ranksByRole = map[string][]Choice[string]{
	"admin":   {{"Fire Chief", 1}, {"Deputy Chief", 2}},
	"manager": {{"Battalion Chief", 2}, {"Captain", 3}, {"EMS Supervisor", 2}},
	"user":    {{"Firefighter", 5}, {"Paramedic", 3}, {"EMT", 3}, {"Lieutenant", 2}, {"Engineer", 2}},
	"viewer":  {{"Data Analyst", 2}, {"Administrative Assistant", 2}, {"Records Clerk", 1}},
}

var certifications = []Choice[string]{
	{"EMT-Basic", 8},
	{"Paramedic", 4},
	{"Firefighter I", 8},
	{"Firefighter II", 6},
	{"HazMat Operations", 4},
	{"Fire Officer I", 2},
	{"Driver/Operator", 3},
	{"Technical Rescue", 2},
	{"Incident Safety Officer", 1},
}

var firstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Patricia", "David", "Jennifer",
	"Daniel", "Elizabeth", "Carlos", "Aisha", "Kevin", "Mei", "Thomas", "Sofia",
	"Andre", "Rachel", "Luis", "Hannah",
}

var lastNames = []string{
	"Smith", "Johnson", "Garcia", "Williams", "Brown", "Martinez", "Davis", "Lopez",
	"Wilson", "Anderson", "Nguyen", "Patel", "Thompson", "Ramirez", "Clark", "Lewis",
	"Walker", "Young", "Hernandez", "King",
}

var streets = []string{
	"Main St", "Oak Ave", "Maple Dr", "Cedar Ln", "Elm St", "Washington Blvd",
	"Lincoln Ave", "Park Rd", "Lakeview Dr", "Hillcrest Rd", "Sunset Blvd",
	"Highland Ave", "River Rd", "Church St", "Mill St",
}

// incidentTypeWeights is the flat sampling table for incident types. The
// category is never sampled; it is looked up from the type.
var incidentTypeWeights = []Choice[string]{
	{"Medical Emergency", 30},
	{"Cardiac Arrest", 4},
	{"Difficulty Breathing", 8},
	{"Fall Injury", 8},
	{"Motor Vehicle Accident", 7},
	{"Overdose", 4},
	{"Stroke", 3},
	{"Unconscious Person", 4},
	{"Structure Fire", 4},
	{"Vehicle Fire", 3},
	{"Brush Fire", 2},
	{"Fire Alarm", 8},
	{"Smoke Investigation", 3},
	{"Gas Leak", 2},
	{"Hazmat Incident", 1},
	{"Public Assist", 5},
	{"Lift Assist", 4},
	{"Water Problem", 1},
	{"Lockout", 1},
	{"Animal Rescue", 1},
}

var priorityWeights = []Choice[int]{
	{1, 10},
	{2, 20},
	{3, 40},
	{4, 20},
	{5, 10},
}

var criticalPriorityWeights = []Choice[int]{
	{1, 70},
	{2, 30},
}

// secondsRange is an inclusive interval in seconds.
type secondsRange struct {
	Min int
	Max int
}

// Call processing and travel windows shrink as priority rises (1 is most
// urgent).
var dispatchWindows = map[int]secondsRange{
	1: {20, 60},
	2: {30, 90},
	3: {45, 120},
	4: {60, 180},
	5: {90, 300},
}

var travelWindows = map[int]secondsRange{
	1: {120, 420},
	2: {180, 540},
	3: {240, 720},
	4: {300, 900},
	5: {360, 1200},
}

var turnoutWindow = secondsRange{30, 120}

var onSceneByCategory = map[string]secondsRange{
	domain.IncidentCategoryEMS:     {600, 2400},
	domain.IncidentCategoryFire:    {900, 5400},
	domain.IncidentCategoryService: {300, 1800},
}

var onSceneByType = map[string]secondsRange{
	"Structure Fire":  {2700, 14400},
	"Cardiac Arrest":  {1800, 3600},
	"Fire Alarm":      {300, 1500},
	"Hazmat Incident": {3600, 10800},
	"Lockout":         {300, 900},
}

type countRange struct {
	Min int
	Max int
}

var unitCountByCategory = map[string]countRange{
	domain.IncidentCategoryEMS:     {1, 2},
	domain.IncidentCategoryFire:    {1, 3},
	domain.IncidentCategoryService: {1, 1},
}

var unitCountByType = map[string]countRange{
	"Structure Fire":         {3, 6},
	"Cardiac Arrest":         {2, 3},
	"Motor Vehicle Accident": {2, 4},
	"Hazmat Incident":        {2, 5},
	"Brush Fire":             {2, 4},
}

// Units are assigned from these sequences, cycling when an incident needs
// more units than listed.
var unitSequenceByCategory = map[string][]string{
	domain.IncidentCategoryEMS:     {domain.ApparatusAmbulance, domain.ApparatusEngine, domain.ApparatusAmbulance, domain.ApparatusRescue},
	domain.IncidentCategoryFire:    {domain.ApparatusEngine, domain.ApparatusEngine, domain.ApparatusLadder, domain.ApparatusCommand, domain.ApparatusRescue, domain.ApparatusAmbulance},
	domain.IncidentCategoryService: {domain.ApparatusEngine},
}

var unitSequenceByType = map[string][]string{
	"Hazmat Incident":        {domain.ApparatusEngine, domain.ApparatusHazMat, domain.ApparatusCommand, domain.ApparatusRescue, domain.ApparatusAmbulance},
	"Motor Vehicle Accident": {domain.ApparatusAmbulance, domain.ApparatusEngine, domain.ApparatusRescue, domain.ApparatusAmbulance},
	"Brush Fire":             {domain.ApparatusBrush, domain.ApparatusEngine, domain.ApparatusTanker, domain.ApparatusBrush},
}

var outcomesByCategory = map[string][]Choice[string]{
	domain.IncidentCategoryEMS: {
		{"Transported", 60}, {"Treated and Released", 15}, {"Patient Refusal", 15},
		{"Cancelled on Scene", 8}, {"Dead on Arrival", 2},
	},
	domain.IncidentCategoryFire: {
		{"Extinguished", 35}, {"False Alarm", 30}, {"Investigated - No Fire", 25}, {"Contained", 10},
	},
	domain.IncidentCategoryService: {
		{"Assistance Provided", 80}, {"No Action Required", 20},
	},
}

var callerRelations = []Choice[string]{
	{"Self", 30},
	{"Family Member", 25},
	{"Bystander", 20},
	{"Neighbor", 10},
	{"Facility Staff", 10},
	{"Passerby", 5},
}
