package seed

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// Options configure a seeding run.
type Options struct {
	Posters     int
	Doers       int
	JobsPerUser int
	CaseStudies int
	Reviews     int

	DryRun   bool
	FastHash bool
	MaxDays  int
	RandSeed int64
}

// Presets are named Options for cmd/seed.
var Presets = map[string]Options{
	"small": {Posters: 2, Doers: 4, JobsPerUser: 2, CaseStudies: 2, Reviews: 3},
	"demo":  {Posters: 5, Doers: 15, JobsPerUser: 4, CaseStudies: 6, Reviews: 20},
	"large": {Posters: 25, Doers: 100, JobsPerUser: 8, CaseStudies: 20, Reviews: 200},
}

// Result counts what a run created.
type Result struct {
	Users        int
	Jobs         int
	Applications int
	CaseStudies  int
	Reviews      int
}

func (r Result) String() string {
	return fmt.Sprintf("%d users, %d jobs, %d applications, %d case studies, %d reviews",
		r.Users, r.Jobs, r.Applications, r.CaseStudies, r.Reviews)
}

// Seeder populates a database through a Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	f, err := NewFactory(db, opts)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: f, opts: opts}, nil
}

// Run creates posters with jobs, doers applying to them, and content. A third
// of each poster's jobs are completed so earnings are non-zero.
func (s *Seeder) Run() (Result, error) {
	var res Result

	posters := make([]*models.User, 0, s.opts.Posters)
	for range s.opts.Posters {
		u, err := s.factory.CreateUser(models.RolePoster)
		if err != nil {
			return res, fmt.Errorf("create poster: %w", err)
		}
		posters = append(posters, u)
	}
	doers := make([]*models.User, 0, s.opts.Doers)
	for range s.opts.Doers {
		u, err := s.factory.CreateUser(models.RoleDoer)
		if err != nil {
			return res, fmt.Errorf("create doer: %w", err)
		}
		doers = append(doers, u)
	}
	res.Users = len(posters) + len(doers)

	var jobs []*models.Job
	for _, poster := range posters {
		for i := range s.opts.JobsPerUser {
			status := models.JobStatusOpen
			if i%3 == 2 {
				status = models.JobStatusCompleted
			}
			job, err := s.factory.CreateJob(poster, func(j *models.Job) { j.Status = status })
			if err != nil {
				return res, fmt.Errorf("create job: %w", err)
			}
			jobs = append(jobs, job)
		}
	}
	res.Jobs = len(jobs)

	if len(doers) > 0 {
		for i, job := range jobs {
			applicants := min(len(doers), 1+i%3)
			for k := range applicants {
				doer := doers[(i+k)%len(doers)]
				status := models.ApplicationPending
				switch {
				case job.Status == models.JobStatusCompleted && k == 0:
					status = models.ApplicationCompleted
				case job.Status == models.JobStatusCompleted:
					status = models.ApplicationRejected
				}
				if _, err := s.factory.CreateApplication(job, doer, status); err != nil {
					return res, fmt.Errorf("create application: %w", err)
				}
				res.Applications++
			}
		}
	}

	for range s.opts.CaseStudies {
		if _, err := s.factory.CreateCaseStudy(); err != nil {
			return res, fmt.Errorf("create case study: %w", err)
		}
		res.CaseStudies++
	}

	authors := slices.Concat(posters, doers)
	if len(authors) > 0 {
		for i := range s.opts.Reviews {
			var job *models.Job
			if len(jobs) > 0 && i%2 == 0 {
				job = jobs[i%len(jobs)]
			}
			if _, err := s.factory.CreateReview(authors[i%len(authors)], job); err != nil {
				return res, fmt.Errorf("create review: %w", err)
			}
			res.Reviews++
		}
	}

	return res, nil
}

// ClearAll deletes every row from the schema-managed tables, children first.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		log.Println("[dry-run] ClearAll skipped")
		return nil
	}

	tables := database.PersistentModels()
	slices.Reverse(tables)
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// PresetNames lists the available presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupPreset resolves a preset name case-insensitively.
func LookupPreset(name string) (Options, error) {
	opts, ok := Presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Options{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return opts, nil
}
