package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_admin_backend/internal/models"
)

func newStaffFixture() (*fakeStaffRepo, StaffService) {
	staffRepo := newFakeStaffRepo()
	return staffRepo, NewStaffService(staffRepo, nil)
}

func seedTrainer(t *testing.T, service StaffService) *models.Staff {
	t.Helper()
	staff, err := service.CreateStaff(CreateStaffRequest{
		FullName:   "Gulnara Akhmetova",
		StaffType:  models.StaffTypeTrainer,
		HourlyRate: 3000,
	})
	require.NoError(t, err)
	return staff
}

func TestCreateStaffValidation(t *testing.T) {
	_, service := newStaffFixture()

	_, err := service.CreateStaff(CreateStaffRequest{FullName: "  ", StaffType: models.StaffTypeTrainer, HourlyRate: 100})
	assert.ErrorIs(t, err, ErrStaffValidation)

	_, err = service.CreateStaff(CreateStaffRequest{FullName: "X", StaffType: "MANAGER", HourlyRate: 100})
	assert.ErrorIs(t, err, ErrStaffValidation)

	_, err = service.CreateStaff(CreateStaffRequest{FullName: "X", StaffType: models.StaffTypeCleaning, HourlyRate: -1})
	assert.ErrorIs(t, err, ErrStaffValidation)

	badDate := "31-12-1990"
	_, err = service.CreateStaff(CreateStaffRequest{FullName: "X", StaffType: models.StaffTypeCleaning, HourlyRate: 100, BirthDate: &badDate})
	assert.ErrorIs(t, err, ErrDateFormat)
}

func TestOpenSessionRejectsSecondOpen(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	first, err := service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	require.NoError(t, err)
	assert.Nil(t, first.EndTime)
	assert.Equal(t, time.Now().Format("2006-01-02"), first.SessionDate)

	_, err = service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	assert.ErrorIs(t, err, ErrOpenSessionExists)

	// Closing the open session clears the way for the next shift.
	_, err = service.CloseSession(first.ID)
	require.NoError(t, err)
	_, err = service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	assert.NoError(t, err)
}

func TestOpenSessionRejectsInactiveStaff(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)
	require.NoError(t, service.DeactivateStaff(trainer.ID))

	_, err := service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	assert.ErrorIs(t, err, ErrStaffValidation)
}

func TestCloseSessionComputesHours(t *testing.T) {
	staffRepo, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	start := time.Now().Add(-2 * time.Hour)
	sessionID, err := staffRepo.CreateSession(nil, &models.StaffSession{
		StaffID:     trainer.ID,
		SessionDate: start.Format("2006-01-02"),
		StartTime:   start,
	})
	require.NoError(t, err)

	closed, err := service.CloseSession(sessionID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.TotalHours)
	assert.InDelta(t, 2.0, *closed.TotalHours, 0.02)

	_, err = service.CloseSession(sessionID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
}

func TestUpdateSessionRecomputesHours(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	session, err := service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	require.NoError(t, err)

	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
	end := start.Add(90 * time.Minute)
	updated, err := service.UpdateSession(session.ID, UpdateSessionRequest{StartTime: &start, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", updated.SessionDate)
	require.NotNil(t, updated.TotalHours)
	assert.InDelta(t, 1.5, *updated.TotalHours, 0.001)
}

func TestUpdateSessionRejectsBackwardsInterval(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	session, err := service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	require.NoError(t, err)

	end := session.StartTime.Add(-time.Hour)
	_, err = service.UpdateSession(session.ID, UpdateSessionRequest{EndTime: &end})
	assert.ErrorIs(t, err, ErrSessionTimeOrder)
}

func TestDeleteSession(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	session, err := service.OpenSession(OpenSessionRequest{StaffID: trainer.ID})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSession(session.ID))
	_, err = service.GetSessionByID(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	err = service.DeleteSession(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateStaff(t *testing.T) {
	_, service := newStaffFixture()
	trainer := seedTrainer(t, service)

	rate := 3500.0
	updated, err := service.UpdateStaff(trainer.ID, UpdateStaffRequest{HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, rate, updated.HourlyRate)
	assert.Equal(t, trainer.FullName, updated.FullName)

	badType := "OWNER"
	_, err = service.UpdateStaff(trainer.ID, UpdateStaffRequest{StaffType: &badType})
	assert.ErrorIs(t, err, ErrStaffValidation)

	_, err = service.UpdateStaff(999, UpdateStaffRequest{})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
