package domain

// MissingDetail describes one weighted profile item that is still empty.
type MissingDetail struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type completionItem struct {
	key    string
	label  string
	weight int
	filled func(a *ProfileAggregate) bool
}

// completionItems is the fixed weight table. The raw weights sum to 105; the
// computed score is capped at 100. It is a static read-only constant shared
// across requests.
var completionItems = []completionItem{
	{"personal_full_name", "Add full name", 5, func(a *ProfileAggregate) bool { return a.Profile.FullName != "" }},
	{"personal_email", "Add email", 5, func(a *ProfileAggregate) bool { return a.Profile.Email != "" }},
	{"personal_phone", "Add phone number", 5, func(a *ProfileAggregate) bool { return a.Profile.Phone != "" }},
	{"personal_location", "Add location", 5, func(a *ProfileAggregate) bool { return a.Profile.Location != "" }},
	{"work_status", "Add work status", 5, func(a *ProfileAggregate) bool { return a.Profile.WorkStatus != "" }},
	{"availability", "Add availability to join", 5, func(a *ProfileAggregate) bool { return a.Profile.AvailabilityToJoin != "" }},
	{"summary", "Add profile summary", 15, func(a *ProfileAggregate) bool { return a.Profile.Summary != "" }},
	{"skills", "Add key skills", 15, func(a *ProfileAggregate) bool { return len(a.Skills) > 0 }},
	{"employment", "Add employment history", 15, func(a *ProfileAggregate) bool { return len(a.Employments) > 0 }},
	{"education", "Add education details", 15, func(a *ProfileAggregate) bool { return len(a.Educations) > 0 }},
	{"projects", "Add projects", 5, func(a *ProfileAggregate) bool { return len(a.Projects) > 0 }},
	{"resume", "Upload resume", 10, func(a *ProfileAggregate) bool { return a.Profile.ResumeKey != "" }},
}

// MinSearchableCompletion is the threshold a profile must reach before it may
// be marked searchable.
const MinSearchableCompletion = 60

// CalculateCompletion computes the weighted completeness score and the
// ordered missing-item list. Pure: no I/O, deterministic.
func CalculateCompletion(a *ProfileAggregate) (int, []MissingDetail) {
	total := 0
	missing := []MissingDetail{}
	for _, item := range completionItems {
		if item.filled(a) {
			total += item.weight
		} else {
			missing = append(missing, MissingDetail{
				Key:     item.key,
				Label:   item.label,
				Percent: item.weight,
			})
		}
	}
	if total > 100 {
		total = 100
	}
	return total, missing
}
