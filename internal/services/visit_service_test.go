package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_admin_backend/internal/models"
)

type visitFixture struct {
	memberRepo     *fakeMemberRepo
	planRepo       *fakePlanRepo
	membershipRepo *fakeMembershipRepo
	visitRepo      *fakeVisitRepo
	service        VisitService
}

func newVisitFixture() *visitFixture {
	memberRepo := newFakeMemberRepo()
	planRepo := newFakePlanRepo()
	membershipRepo := newFakeMembershipRepo(memberRepo, planRepo)
	visitRepo := newFakeVisitRepo(memberRepo)
	return &visitFixture{
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		membershipRepo: membershipRepo,
		visitRepo:      visitRepo,
		service:        NewVisitService(visitRepo, membershipRepo, memberRepo, fakeTxRunner{}),
	}
}

// seed creates an active member holding an active membership on a 10-class
// plan, with classesUsed classes already consumed.
func (f *visitFixture) seed(classesUsed int) (*models.Member, *models.Membership) {
	member := f.memberRepo.put(models.Member{
		MembershipNumber: "GM-260301-0001",
		FirstName:        "Aida",
		LastName:         "Serikova",
		Gender:           models.GenderFemale,
		IsActive:         true,
	})
	plan := f.planRepo.put(models.Plan{
		Name:         "Monthly 10",
		DurationDays: 30,
		TotalClasses: 10,
		Price:        15000,
		IsActive:     true,
	})
	membership := f.membershipRepo.put(models.Membership{
		MemberID:      member.ID,
		PlanID:        plan.ID,
		StartDate:     time.Now().AddDate(0, 0, -5),
		EndDate:       time.Now().AddDate(0, 0, 25),
		ClassesUsed:   classesUsed,
		PaymentMethod: models.PaymentMethodCash,
		TotalPaid:     15000,
		IsActive:      true,
	})
	return member, membership
}

func TestRecordVisitConsumesClass(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(3)

	visit, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	require.NoError(t, err)
	assert.Equal(t, member.ID, visit.MemberID)
	assert.Equal(t, membership.ID, visit.MembershipID)

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.ClassesUsed)
}

func TestRecordVisitMemberNotFound(t *testing.T) {
	f := newVisitFixture()

	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: 99})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRecordVisitInactiveMember(t *testing.T) {
	f := newVisitFixture()
	member, _ := f.seed(0)
	require.NoError(t, f.memberRepo.DeactivateMember(nil, member.ID))

	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	assert.ErrorIs(t, err, ErrMemberInactive)
}

func TestRecordVisitNoActiveMembership(t *testing.T) {
	f := newVisitFixture()
	member := f.memberRepo.put(models.Member{
		MembershipNumber: "GM-260301-0002",
		FirstName:        "Erlan",
		LastName:         "Bekov",
		IsActive:         true,
	})

	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	assert.ErrorIs(t, err, ErrNoActiveMembership)
}

func TestRecordVisitExpiredMembership(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)
	membership.EndDate = time.Now().AddDate(0, 0, -1)
	f.membershipRepo.put(*membership)

	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	assert.ErrorIs(t, err, ErrNoActiveMembership)
}

func TestRecordVisitOnEndDateStillAdmits(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)
	now := time.Now()
	membership.EndDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	f.membershipRepo.put(*membership)

	visit, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	require.NoError(t, err)
	assert.Equal(t, membership.ID, visit.MembershipID)
}

func TestRecordVisitBackdated(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)

	date := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	visit, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID, VisitDate: &date})
	require.NoError(t, err)
	assert.Equal(t, membership.ID, visit.MembershipID)
	assert.Equal(t, date, visit.VisitDate.Format("2006-01-02"))

	stored, err := f.service.GetVisitByID(visit.ID)
	require.NoError(t, err)
	assert.Equal(t, date, stored.VisitDate.Format("2006-01-02"))
}

func TestRecordVisitRejectsBadDate(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)

	bad := "01.03.2026"
	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID, VisitDate: &bad})
	assert.ErrorIs(t, err, ErrDateFormat)

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ClassesUsed)
}

func TestRecordVisitNoClassesRemaining(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(10)

	_, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	assert.ErrorIs(t, err, ErrNoClassesRemaining)

	// The failed admission must not leave a visit behind or touch the counter.
	visits, total, err := f.service.GetVisits(models.VisitFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, visits)

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.ClassesUsed)
}

func TestDeleteVisitRestoresClass(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)

	visit, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	require.NoError(t, err)

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.ClassesUsed)

	require.NoError(t, f.service.DeleteVisit(visit.ID))

	stored, err = f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ClassesUsed)

	_, err = f.service.GetVisitByID(visit.ID)
	assert.ErrorIs(t, err, ErrVisitNotFound)

	err = f.service.DeleteVisit(visit.ID)
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestDeleteVisitClampsCounterAtZero(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)

	visitID, err := f.visitRepo.CreateVisit(nil, &models.Visit{
		MemberID:     member.ID,
		MembershipID: membership.ID,
		VisitDate:    time.Now(),
	})
	require.NoError(t, err)

	// The counter was already corrected by hand; restoring must not drive it
	// negative.
	require.NoError(t, f.service.DeleteVisit(visitID))

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ClassesUsed)
}

func TestDeleteVisitSurvivesMissingMembership(t *testing.T) {
	f := newVisitFixture()
	member, _ := f.seed(0)

	visitID, err := f.visitRepo.CreateVisit(nil, &models.Visit{
		MemberID:     member.ID,
		MembershipID: 777,
		VisitDate:    time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteVisit(visitID))

	_, err = f.service.GetVisitByID(visitID)
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestUpdateVisitTouchesOnlyNotes(t *testing.T) {
	f := newVisitFixture()
	member, membership := f.seed(0)

	visit, err := f.service.RecordVisit(RecordVisitRequest{MemberID: member.ID})
	require.NoError(t, err)

	notes := "brought a guest"
	updated, err := f.service.UpdateVisit(visit.ID, UpdateVisitRequest{Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	stored, err := f.membershipRepo.GetMembershipByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ClassesUsed)
}
