package services

import (
	"fmt"

	"go.uber.org/zap"
)

type ProjectService struct {
	projects ProjectStore
	log      *zap.Logger
}

func NewProjectService(projects ProjectStore, log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{projects: projects, log: log}
}

// GeneratePlanning sizes tasks from the stored voorcalculatie and replaces
// the project's planning.
func (s *ProjectService) GeneratePlanning(projectID string) (Planning, error) {
	v, err := s.projects.LoadVoorcalculatie(projectID)
	if err != nil {
		return Planning{}, fmt.Errorf("load voorcalculatie: %w", err)
	}
	p := SizePlanning(v.HoursPerScope, v.Team())
	if err := s.projects.SavePlanning(projectID, p); err != nil {
		return Planning{}, fmt.Errorf("save planning: %w", err)
	}
	s.log.Info("planning generated",
		zap.String("project", projectID),
		zap.Int("tasks", len(p.Tasks)),
		zap.Float64("days", p.TotalDays),
	)
	return p, nil
}

// ReorderPlanning stores the tasks in the given order.
func (s *ProjectService) ReorderPlanning(projectID string, taskIDs []string) (Planning, error) {
	p, err := s.projects.LoadPlanning(projectID)
	if err != nil {
		return Planning{}, fmt.Errorf("load planning: %w", err)
	}
	tasks, err := ReorderTasks(p.Tasks, taskIDs)
	if err != nil {
		return Planning{}, err
	}
	p.Tasks = tasks
	if err := s.projects.SavePlanning(projectID, p); err != nil {
		return Planning{}, fmt.Errorf("save planning: %w", err)
	}
	return p, nil
}

// Nacalculatie compares the logs with the voorcalculatie. With persist set
// the report is stored as the project's latest snapshot.
func (s *ProjectService) Nacalculatie(projectID string, persist bool) (NacalculatieReport, error) {
	v, err := s.projects.LoadVoorcalculatie(projectID)
	if err != nil {
		return NacalculatieReport{}, fmt.Errorf("load voorcalculatie: %w", err)
	}
	entries, err := s.projects.TimeEntries(projectID)
	if err != nil {
		return NacalculatieReport{}, fmt.Errorf("load time entries: %w", err)
	}
	usage, err := s.projects.MachineUsage(projectID)
	if err != nil {
		return NacalculatieReport{}, fmt.Errorf("load machine usage: %w", err)
	}

	r := CalculateNacalculatie(v, entries, usage)
	if persist {
		if err := s.projects.SaveNacalculatie(projectID, r); err != nil {
			return NacalculatieReport{}, fmt.Errorf("save nacalculatie: %w", err)
		}
	}
	s.log.Debug("nacalculatie computed",
		zap.String("project", projectID),
		zap.Float64("deviationPercent", r.DeviationPercent),
		zap.String("status", string(r.Status)),
	)
	return r, nil
}

// LogTime appends one validated hour registration.
func (s *ProjectService) LogTime(projectID string, e TimeEntry) (TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return TimeEntry{}, err
	}
	saved, err := s.projects.AppendTimeEntry(projectID, e)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("append time entry: %w", err)
	}
	return saved, nil
}

// LogMachine appends one validated equipment registration.
func (s *ProjectService) LogMachine(projectID string, u MachineUsage) (MachineUsage, error) {
	if err := u.Validate(); err != nil {
		return MachineUsage{}, err
	}
	saved, err := s.projects.AppendMachineUsage(projectID, u)
	if err != nil {
		return MachineUsage{}, fmt.Errorf("append machine usage: %w", err)
	}
	return saved, nil
}

// ExportNacalculatie renders the current report as xlsx.
func (s *ProjectService) ExportNacalculatie(projectID, title string) ([]byte, error) {
	r, err := s.Nacalculatie(projectID, false)
	if err != nil {
		return nil, err
	}
	return GenerateNacalculatieExcel(title, r)
}
