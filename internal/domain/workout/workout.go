package workout

type Exercise struct {
	Name         string `json:"name"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Rest         string `json:"rest"`
	Instructions string `json:"instructions"`
}

type Section struct {
	Motto     string     `json:"motto"`
	Exercises []Exercise `json:"exercises"`
	Duration  string     `json:"duration"`
	VideoURL  string     `json:"video_url,omitempty"`
}

type Day struct {
	Day         string  `json:"day"`
	Focus       string  `json:"focus"`
	WarmUp      Section `json:"warm_up"`
	MainRoutine Section `json:"main_routine"`
	CoolDown    Section `json:"cool_down"`
}

type Plan struct {
	Days []Day `json:"workout_plan"`
}

// SectionKeys are the three sections every day must carry, in routine order.
var SectionKeys = []string{"warm_up", "main_routine", "cool_down"}

// Sections returns the day's sections in routine order, labelled.
func (d Day) Sections() []NamedSection {
	return []NamedSection{
		{Key: "warm_up", Label: "Warm-up", Section: d.WarmUp},
		{Key: "main_routine", Label: "Main routine", Section: d.MainRoutine},
		{Key: "cool_down", Label: "Cool-down", Section: d.CoolDown},
	}
}

type NamedSection struct {
	Key     string
	Label   string
	Section Section
}

func (s Section) Clone() Section {
	out := s
	out.Exercises = append([]Exercise{}, s.Exercises...)
	return out
}

func (d Day) Clone() Day {
	out := d
	out.WarmUp = d.WarmUp.Clone()
	out.MainRoutine = d.MainRoutine.Clone()
	out.CoolDown = d.CoolDown.Clone()
	return out
}

func (p Plan) Clone() Plan {
	days := make([]Day, len(p.Days))
	for i, d := range p.Days {
		days[i] = d.Clone()
	}
	return Plan{Days: days}
}

// ExerciseCount counts exercises across all sections of all days.
func (p Plan) ExerciseCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.WarmUp.Exercises) + len(d.MainRoutine.Exercises) + len(d.CoolDown.Exercises)
	}
	return n
}
