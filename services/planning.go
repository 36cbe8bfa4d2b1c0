package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"offertetool/estimation"
	"offertetool/scopes"
)

// ErrInvalidTaskOrder is returned when a reorder request is not a
// permutation of the current task IDs.
var ErrInvalidTaskOrder = errors.New("task order must list every task exactly once")

type Team struct {
	Size                 int     `json:"teamGrootte"`
	EffectiveHoursPerDay float64 `json:"effectieveUrenPerDag"`
}

func (t Team) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Size, validation.Required, validation.Min(2), validation.Max(4)),
		validation.Field(&t.EffectiveHoursPerDay, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(24.0)),
	)
}

// Capacity is the number of team hours per working day.
func (t Team) Capacity() float64 {
	return float64(t.Size) * t.EffectiveHoursPerDay
}

// DaysFor converts hours to working days at two decimals. A non-positive
// capacity yields zero days.
func DaysFor(hours, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Round(hours/capacity*100) / 100
}

type Task struct {
	ID    string     `json:"id"`
	Scope scopes.Key `json:"scope"`
	Name  string     `json:"naam"`
	Order int        `json:"volgorde"`
	Hours float64    `json:"uren"`
	Days  float64    `json:"dagen"`
}

type Planning struct {
	TotalHours float64 `json:"totaalUren"`
	TotalDays  float64 `json:"totaalDagen"`
	Tasks      []Task  `json:"taken"`
}

type taskTemplate struct {
	name   string
	weight float64
}

var taskTemplates = map[scopes.Key][]taskTemplate{
	scopes.Grondwerk: {
		{"Uitzetten en ontgraven", 0.7},
		{"Grond afvoeren en egaliseren", 0.3},
	},
	scopes.WaterElectra: {
		{"Sleuven graven", 0.4},
		{"Kabels en leidingen leggen", 0.3},
		{"Armaturen en aftappunten aansluiten", 0.3},
	},
	scopes.Bestrating: {
		{"Onderbouw aanbrengen", 0.35},
		{"Bestraten", 0.5},
		{"Afwerken en invegen", 0.15},
	},
	scopes.Houtwerk: {
		{"Palen en fundering plaatsen", 0.35},
		{"Constructie opbouwen", 0.5},
		{"Afwerken", 0.15},
	},
	scopes.Borders: {
		{"Grond voorbereiden", 0.3},
		{"Beplanten", 0.55},
		{"Afwerklaag aanbrengen", 0.15},
	},
	scopes.Gras: {
		{"Grond frezen en egaliseren", 0.4},
		{"Zaaien of zoden leggen", 0.5},
		{"Aanrollen en water geven", 0.1},
	},
	scopes.GrasOnderhoud: {
		{"Maaien en kanten steken", 1},
	},
	scopes.BordersOnderhoud: {
		{"Wieden en snoeien", 1},
	},
	scopes.Heggen: {
		{"Heggen snoeien", 0.8},
		{"Snoeisel afvoeren", 0.2},
	},
	scopes.Bomen: {
		{"Bomen snoeien", 0.8},
		{"Snoeihout afvoeren", 0.2},
	},
	scopes.Overig: {
		{"Overige werkzaamheden", 1},
	},
}

var taskNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("offertetool:planning-taak"))

func taskID(scope scopes.Key, name string) string {
	return uuid.NewSHA1(taskNamespace, []byte(string(scope)+"/"+name)).String()
}

// SizePlanning turns per-scope hours into a day count and a task list in
// canonical scope order. Scopes without hours produce no tasks.
func SizePlanning(hoursPerScope map[scopes.Key]float64, team Team) Planning {
	capacity := team.Capacity()

	keys := make([]scopes.Key, 0, len(hoursPerScope))
	hours := make([]float64, 0, len(hoursPerScope))
	for k, h := range hoursPerScope {
		keys = append(keys, k)
		hours = append(hours, h)
	}
	scopes.Sort(keys)

	p := Planning{TotalHours: sumExact(hours...)}
	p.TotalDays = DaysFor(p.TotalHours, capacity)

	for _, k := range keys {
		h := hoursPerScope[k]
		if h <= 0 {
			continue
		}
		templates, ok := taskTemplates[k]
		if !ok {
			templates = []taskTemplate{{"Werkzaamheden " + k.Label(), 1}}
		}
		for _, tpl := range templates {
			taskHours := estimation.RoundToQuarter(h * tpl.weight)
			p.Tasks = append(p.Tasks, Task{
				ID:    taskID(k, tpl.name),
				Scope: k,
				Name:  tpl.name,
				Order: len(p.Tasks) + 1,
				Hours: taskHours,
				Days:  DaysFor(taskHours, capacity),
			})
		}
	}
	return p
}

// ReorderTasks returns tasks in the order of ids, renumbered from 1.
func ReorderTasks(tasks []Task, ids []string) ([]Task, error) {
	if len(ids) != len(tasks) {
		return nil, fmt.Errorf("%w: got %d ids for %d tasks", ErrInvalidTaskOrder, len(ids), len(tasks))
	}
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	out := make([]Task, 0, len(tasks))
	for i, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown or repeated id %q", ErrInvalidTaskOrder, id)
		}
		delete(byID, id)
		t.Order = i + 1
		out = append(out, t)
	}
	return out, nil
}

// SortTasks orders tasks by their Order field.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
}
