package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_admin_backend/internal/models"
)

func newMemberFixture() (*fakeMemberRepo, MemberService) {
	memberRepo := newFakeMemberRepo()
	return memberRepo, NewMemberService(memberRepo, nil)
}

func TestCreateMemberAssignsMembershipNumber(t *testing.T) {
	_, service := newMemberFixture()

	member, err := service.CreateMember(CreateMemberRequest{
		FirstName: "  Aisulu ",
		LastName:  "Tulegenova",
		Gender:    models.GenderFemale,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aisulu", member.FirstName)
	assert.True(t, member.IsActive)
	assert.True(t, strings.HasPrefix(member.MembershipNumber, "GM-"))

	found, err := service.GetMemberByMembershipNumber(member.MembershipNumber)
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
}

func TestCreateMemberValidation(t *testing.T) {
	_, service := newMemberFixture()

	_, err := service.CreateMember(CreateMemberRequest{FirstName: " ", LastName: "X", Gender: models.GenderMale})
	assert.ErrorIs(t, err, ErrMemberValidation)

	_, err = service.CreateMember(CreateMemberRequest{FirstName: "A", LastName: "B", Gender: "UNKNOWN"})
	assert.ErrorIs(t, err, ErrMemberValidation)

	badEmail := "not-an-email"
	_, err = service.CreateMember(CreateMemberRequest{FirstName: "A", LastName: "B", Gender: models.GenderMale, Email: &badEmail})
	assert.ErrorIs(t, err, ErrMemberValidation)
}

func TestUpdateMember(t *testing.T) {
	_, service := newMemberFixture()

	member, err := service.CreateMember(CreateMemberRequest{
		FirstName: "Aisulu",
		LastName:  "Tulegenova",
		Gender:    models.GenderFemale,
	})
	require.NoError(t, err)

	phone := "+77011234567"
	email := "aisulu@example.kz"
	updated, err := service.UpdateMember(member.ID, UpdateMemberRequest{PhoneNumber: &phone, Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	assert.Equal(t, member.MembershipNumber, updated.MembershipNumber)

	empty := " "
	_, err = service.UpdateMember(member.ID, UpdateMemberRequest{FirstName: &empty})
	assert.ErrorIs(t, err, ErrMemberValidation)

	_, err = service.UpdateMember(999, UpdateMemberRequest{})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestDeactivateMember(t *testing.T) {
	memberRepo, service := newMemberFixture()

	member, err := service.CreateMember(CreateMemberRequest{
		FirstName: "Aisulu",
		LastName:  "Tulegenova",
		Gender:    models.GenderFemale,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeactivateMember(member.ID))
	stored, err := memberRepo.GetMemberByID(member.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, service.DeactivateMember(999), ErrMemberNotFound)
}
