// Package seed provides helpers to create demo data for the job board
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password given to every seeded account.
const DefaultPassword = "password123"

// Departments seeded accounts and jobs are spread across.
var Departments = []string{"Engineering", "Marketing", "Operations", "Finance", "Sales", "People"}

var skillPool = []string{
	"excel", "copywriting", "design", "sql", "python", "research",
	"presentation", "translation", "photography", "data-entry", "figma", "go",
}

var caseStudyCategories = []string{"Data cleanup", "Content", "Design", "Automation", "Research"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db     *gorm.DB
	opts   Options
	faker  *gofakeit.Faker
	hash   string
	issued map[string]bool
}

// NewFactory creates a Factory bound to db. db may be nil when opts.DryRun is set.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	cost := bcrypt.DefaultCost
	if opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	randSeed := opts.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}

	return &Factory{
		db:     db,
		opts:   opts,
		faker:  gofakeit.New(randSeed),
		hash:   string(hash),
		issued: make(map[string]bool),
	}, nil
}

// pastTime returns a timestamp within the last opts.MaxDays days.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

func (f *Factory) uniqueUsername() string {
	for {
		base := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, strings.ToLower(f.faker.FirstName()+"."+f.faker.LastName()))
		name := fmt.Sprintf("%s%d", base, f.faker.Number(10, 999))
		if len(name) > 50 {
			name = name[:50]
		}
		if !f.issued[name] {
			f.issued[name] = true
			return name
		}
	}
}

func (f *Factory) skills(n int) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, n)
	seen := make(map[string]bool, n)
	for len(out) < n {
		skill := f.faker.RandomString(skillPool)
		if seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}

// BuildUser returns an unsaved user with the given role.
func (f *Factory) BuildUser(role models.Role, overrides ...func(*models.User)) *models.User {
	username := f.uniqueUsername()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: f.hash,
		Role:         role,
		Department:   f.faker.RandomString(Departments),
		CreatedAt:    f.pastTime(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildJob returns an unsaved open job posted by poster.
func (f *Factory) BuildJob(poster *models.User, overrides ...func(*models.Job)) *models.Job {
	title := strings.TrimSuffix(f.faker.HipsterSentence(4), ".")
	rewardType := models.RewardCredits
	reward := float64(f.faker.Number(5, 200))
	if f.faker.Bool() {
		rewardType = models.RewardCash
		reward = float64(f.faker.Number(20, 500))
	}

	job := &models.Job{
		Title:          title,
		Slug:           strings.ReplaceAll(strings.ToLower(title), " ", "-") + "-" + uuid.NewString()[:8],
		Description:    f.faker.Paragraph(1, 3, 12, " "),
		Reward:         reward,
		RewardType:     rewardType,
		PostedBy:       poster.ID,
		Department:     poster.Department,
		EstimatedTime:  fmt.Sprintf("%d hours", f.faker.Number(1, 8)),
		SkillsRequired: f.skills(f.faker.Number(1, 3)),
		Status:         models.JobStatusOpen,
		IsFeatured:     f.faker.Number(1, 10) == 1,
		ImageURL:       fmt.Sprintf("https://picsum.photos/seed/%s/800/450", f.faker.UUID()),
		CreatedAt:      f.pastTime(),
	}
	for _, override := range overrides {
		override(job)
	}
	return job
}

// BuildCaseStudy returns an unsaved case study.
func (f *Factory) BuildCaseStudy(overrides ...func(*models.CaseStudy)) *models.CaseStudy {
	difficulties := []string{
		string(models.DifficultyEasy), string(models.DifficultyMedium), string(models.DifficultyHard),
	}
	cs := &models.CaseStudy{
		Title:           strings.TrimSuffix(f.faker.HipsterSentence(5), "."),
		Category:        f.faker.RandomString(caseStudyCategories),
		Problem:         f.faker.Paragraph(1, 2, 14, " "),
		Solution:        f.faker.Paragraph(1, 3, 14, " "),
		TimeToDeliver:   f.faker.Number(30, 480),
		DifficultyLevel: models.Difficulty(f.faker.RandomString(difficulties)),
		Tags:            f.skills(2),
		CreatedAt:       f.pastTime(),
	}
	for _, override := range overrides {
		override(cs)
	}
	return cs
}

func (f *Factory) create(kind string, v any) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] create %s (no DB write)", kind)
		return nil
	}
	return f.db.Create(v).Error
}

// CreateUser persists a generated user.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(role, overrides...)
	if f.opts.DryRun {
		user.ID = uuid.New()
	}
	if err := f.create("user", user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateJob persists a generated job for poster.
func (f *Factory) CreateJob(poster *models.User, overrides ...func(*models.Job)) (*models.Job, error) {
	job := f.BuildJob(poster, overrides...)
	if f.opts.DryRun {
		job.ID = uuid.New()
	}
	if err := f.create("job", job); err != nil {
		return nil, err
	}
	return job, nil
}

// CreateApplication persists an application from applicant to job.
func (f *Factory) CreateApplication(job *models.Job, applicant *models.User, status models.ApplicationStatus) (*models.Application, error) {
	app := &models.Application{
		JobID:         job.ID,
		ApplicantID:   applicant.ID,
		Status:        status,
		SubmittedWork: f.faker.Sentence(12),
		CreatedAt:     f.pastTime(),
	}
	if err := f.create("application", app); err != nil {
		return nil, err
	}
	return app, nil
}

// CreateCaseStudy persists a generated case study.
func (f *Factory) CreateCaseStudy(overrides ...func(*models.CaseStudy)) (*models.CaseStudy, error) {
	cs := f.BuildCaseStudy(overrides...)
	if err := f.create("case study", cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// CreateReview persists a review by author, optionally about job.
func (f *Factory) CreateReview(author *models.User, job *models.Job) (*models.Review, error) {
	review := &models.Review{
		UserID:    author.ID,
		Rating:    f.faker.Number(models.MinRating, models.MaxRating),
		Comment:   f.faker.Sentence(10),
		CreatedAt: f.pastTime(),
	}
	if job != nil {
		review.JobID = &job.ID
	}
	if err := f.create("review", review); err != nil {
		return nil, err
	}
	return review, nil
}
