package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type parameterRepoStub struct {
	catalog []models.RatingParameter
	created []models.RatingParameter
}

func (s *parameterRepoStub) ListActive(context.Context) ([]models.RatingParameter, error) {
	active := make([]models.RatingParameter, 0, len(s.catalog))
	for _, parameter := range s.catalog {
		if parameter.IsActive {
			active = append(active, parameter)
		}
	}
	return active, nil
}

func (s *parameterRepoStub) Count(context.Context) (int64, error) {
	return int64(len(s.catalog)), nil
}

func (s *parameterRepoStub) CreateAll(_ context.Context, parameters []models.RatingParameter) error {
	s.created = parameters
	s.catalog = append(s.catalog, parameters...)
	return nil
}

type periodRepoStub struct {
	periods []models.FeedbackPeriod
	nextID  uint
}

func (s *periodRepoStub) GetByID(_ context.Context, id uint) (models.FeedbackPeriod, error) {
	for _, period := range s.periods {
		if period.ID == id {
			return period, nil
		}
	}
	return models.FeedbackPeriod{}, gorm.ErrRecordNotFound
}

func (s *periodRepoStub) FindOpenAt(_ context.Context, now time.Time) (models.FeedbackPeriod, error) {
	for _, period := range s.periods {
		if period.WindowOpen(now) {
			return period, nil
		}
	}
	return models.FeedbackPeriod{}, gorm.ErrRecordNotFound
}

func (s *periodRepoStub) FindLatestEnded(_ context.Context, now time.Time) (models.FeedbackPeriod, error) {
	var latest models.FeedbackPeriod
	found := false
	for _, period := range s.periods {
		if !period.EndDate.Before(now) {
			continue
		}
		if !found || period.EndDate.After(latest.EndDate) {
			latest = period
			found = true
		}
	}
	if !found {
		return models.FeedbackPeriod{}, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (s *periodRepoStub) List(context.Context, repository.FeedbackPeriodFilter) ([]models.FeedbackPeriod, int64, error) {
	return s.periods, int64(len(s.periods)), nil
}

func (s *periodRepoStub) Create(_ context.Context, period *models.FeedbackPeriod) error {
	s.nextID++
	period.ID = s.nextID
	s.periods = append(s.periods, *period)
	return nil
}

func (s *periodRepoStub) Update(_ context.Context, period *models.FeedbackPeriod) error {
	for i := range s.periods {
		if s.periods[i].ID == period.ID {
			s.periods[i] = *period
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type assignmentRepoStub struct {
	items []models.TeachingAssignment
}

func (s *assignmentRepoStub) GetByID(_ context.Context, id uint) (models.TeachingAssignment, error) {
	for _, assignment := range s.items {
		if assignment.ID == id {
			return assignment, nil
		}
	}
	return models.TeachingAssignment{}, gorm.ErrRecordNotFound
}

func (s *assignmentRepoStub) ListByClassAndPeriod(_ context.Context, classID, periodID uint) ([]models.TeachingAssignment, error) {
	var matched []models.TeachingAssignment
	for _, assignment := range s.items {
		if assignment.ClassID == classID && assignment.FeedbackPeriodID == periodID {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

func (s *assignmentRepoStub) ListByFacultyAndPeriod(_ context.Context, facultyID, periodID uint) ([]models.TeachingAssignment, error) {
	var matched []models.TeachingAssignment
	for _, assignment := range s.items {
		if assignment.FacultyID == facultyID && assignment.FeedbackPeriodID == periodID {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

type cellKey struct {
	assignmentID uint
	parameterID  uint
}

type aggregateRepoStub struct {
	cells map[cellKey]*models.AggregatedRating
	folds int
}

func newAggregateRepoStub() *aggregateRepoStub {
	return &aggregateRepoStub{cells: make(map[cellKey]*models.AggregatedRating)}
}

func (s *aggregateRepoStub) Fold(_ context.Context, assignmentID, parameterID uint, value int) error {
	s.folds++
	key := cellKey{assignmentID, parameterID}
	cell, ok := s.cells[key]
	if !ok {
		cell = &models.AggregatedRating{
			TeachingAssignmentID: assignmentID,
			RatingParameterID:    parameterID,
		}
		s.cells[key] = cell
	}
	cell.TotalResponses++
	cell.RatingSum += int64(value)
	return nil
}

func (s *aggregateRepoStub) Get(_ context.Context, assignmentID, parameterID uint) (models.AggregatedRating, error) {
	if cell, ok := s.cells[cellKey{assignmentID, parameterID}]; ok {
		return *cell, nil
	}
	return models.AggregatedRating{}, gorm.ErrRecordNotFound
}

func (s *aggregateRepoStub) ListByAssignments(_ context.Context, assignmentIDs []uint) ([]models.AggregatedRating, error) {
	var cells []models.AggregatedRating
	for _, id := range assignmentIDs {
		for key, cell := range s.cells {
			if key.assignmentID == id {
				cells = append(cells, *cell)
			}
		}
	}
	return cells, nil
}

type ledgerStub struct {
	claims map[cellKey]struct{}
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{claims: make(map[cellKey]struct{})}
}

func (s *ledgerStub) Claim(_ context.Context, studentID, assignmentID uint) error {
	key := cellKey{assignmentID, studentID}
	if _, dup := s.claims[key]; dup {
		return repository.ErrAlreadyClaimed
	}
	s.claims[key] = struct{}{}
	return nil
}

func (s *ledgerStub) ListByStudentAndAssignments(_ context.Context, studentID uint, assignmentIDs []uint) ([]models.FeedbackSubmissionStatus, error) {
	var records []models.FeedbackSubmissionStatus
	for _, id := range assignmentIDs {
		if _, ok := s.claims[cellKey{id, studentID}]; ok {
			records = append(records, models.FeedbackSubmissionStatus{
				StudentID:            studentID,
				TeachingAssignmentID: id,
			})
		}
	}
	return records, nil
}

type profileRepoStub struct {
	profiles []models.StudentProfile
	resolved map[uint]uint
}

func newProfileRepoStub(profiles ...models.StudentProfile) *profileRepoStub {
	return &profileRepoStub{profiles: profiles, resolved: make(map[uint]uint)}
}

func (s *profileRepoStub) GetByStudentID(_ context.Context, studentID uint) (models.StudentProfile, error) {
	for _, profile := range s.profiles {
		if profile.StudentID == studentID {
			return profile, nil
		}
	}
	return models.StudentProfile{}, gorm.ErrRecordNotFound
}

func (s *profileRepoStub) FindResolvedPeer(_ context.Context, profile models.StudentProfile) (models.StudentProfile, error) {
	var peer models.StudentProfile
	found := false
	for _, candidate := range s.profiles {
		if candidate.ID == profile.ID || candidate.PendingMapping || candidate.ClassID == nil {
			continue
		}
		if candidate.Branch != profile.Branch || candidate.Semester != profile.Semester || candidate.Section != profile.Section {
			continue
		}
		if !found || candidate.CreatedAt.Before(peer.CreatedAt) {
			peer = candidate
			found = true
		}
	}
	if !found {
		return models.StudentProfile{}, gorm.ErrRecordNotFound
	}
	return peer, nil
}

func (s *profileRepoStub) ResolveClass(_ context.Context, profileID, classID uint) error {
	s.resolved[profileID] = classID
	for i := range s.profiles {
		if s.profiles[i].ID == profileID && s.profiles[i].PendingMapping {
			s.profiles[i].ClassID = &classID
			s.profiles[i].PendingMapping = false
		}
	}
	return nil
}

type facultyRepoStub struct {
	items map[uint]models.Faculty
}

func (s *facultyRepoStub) GetByID(_ context.Context, id uint) (models.Faculty, error) {
	if faculty, ok := s.items[id]; ok {
		return faculty, nil
	}
	return models.Faculty{}, gorm.ErrRecordNotFound
}

var (
	_ repository.RatingParameterRepository    = (*parameterRepoStub)(nil)
	_ repository.FeedbackPeriodRepository     = (*periodRepoStub)(nil)
	_ repository.TeachingAssignmentRepository = (*assignmentRepoStub)(nil)
	_ repository.AggregatedRatingRepository   = (*aggregateRepoStub)(nil)
	_ repository.FeedbackSubmissionRepository = (*ledgerStub)(nil)
	_ repository.StudentProfileRepository     = (*profileRepoStub)(nil)
	_ repository.FacultyRepository            = (*facultyRepoStub)(nil)
)

func fiveParameterCatalog() []models.RatingParameter {
	ids := []string{"PUNCTUALITY", "KNOWLEDGE", "ENGAGEMENT", "CLARITY", "SUPPORT"}
	catalog := make([]models.RatingParameter, 0, len(ids))
	for i, id := range ids {
		catalog = append(catalog, models.RatingParameter{
			ID:           uint(i + 1),
			ParameterID:  id,
			QuestionText: "Rate the faculty.",
			DisplayOrder: i + 1,
			IsActive:     true,
		})
	}
	return catalog
}

func uintPtr(v uint) *uint {
	return &v
}
