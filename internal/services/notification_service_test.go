package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_admin_backend/internal/models"
)

func notificationMembership(id int64, memberName string, endDate time.Time, totalClasses, classesUsed int) models.Membership {
	return models.Membership{
		ID:          id,
		MemberID:    id,
		PlanID:      1,
		EndDate:     endDate,
		ClassesUsed: classesUsed,
		IsActive:    true,
		Member: &models.Member{
			ID:        id,
			FirstName: memberName,
			LastName:  "Test",
			IsActive:  true,
		},
		Plan: &models.Plan{
			ID:           1,
			Name:         "Monthly 10",
			DurationDays: 30,
			TotalClasses: totalClasses,
			IsActive:     true,
		},
	}
}

func TestDeriveNotificationsExpiryWindow(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		endDate  time.Time
		expected bool
		days     int
	}{
		{"expires in two days", now.Add(48 * time.Hour), true, 2},
		{"expires right now", now, true, 0},
		{"expires at window edge", now.Add(72 * time.Hour), true, 3},
		{"expires beyond window", now.Add(73 * time.Hour), false, 0},
		{"end day still running", now.Add(-time.Hour), true, 0},
		{"expired yesterday", now.Add(-13 * time.Hour), false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			memberships := []models.Membership{
				notificationMembership(1, "Aigerim", tc.endDate, 10, 0),
			}
			notifications := DeriveNotifications(memberships, now)

			var expiring []models.Notification
			for _, n := range notifications {
				if n.Type == models.NotificationExpiring {
					expiring = append(expiring, n)
				}
			}

			if !tc.expected {
				assert.Empty(t, expiring)
				return
			}
			require.Len(t, expiring, 1)
			assert.Equal(t, models.PriorityHigh, expiring[0].Priority)
			require.NotNil(t, expiring[0].DaysUntilExpiry)
			assert.Equal(t, tc.days, *expiring[0].DaysUntilExpiry)
		})
	}
}

func TestDeriveNotificationsLowClasses(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	farEnd := now.AddDate(0, 0, 20)

	memberships := []models.Membership{
		notificationMembership(1, "Aigerim", farEnd, 10, 9),  // 1 left
		notificationMembership(2, "Bolat", farEnd, 10, 10),   // 0 left
		notificationMembership(3, "Chingiz", farEnd, 10, 8),  // 2 left, no alert
		notificationMembership(4, "Diana", farEnd, 10, 15),   // over-used, clamped to 0
	}

	notifications := DeriveNotifications(memberships, now)
	require.Len(t, notifications, 3)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationLowClasses, n.Type)
		assert.Equal(t, models.PriorityMedium, n.Priority)
	}

	// Fewest classes first.
	require.NotNil(t, notifications[0].ClassesRemaining)
	assert.Equal(t, 0, *notifications[0].ClassesRemaining)
	assert.Equal(t, 0, *notifications[1].ClassesRemaining)
	assert.Equal(t, 1, *notifications[2].ClassesRemaining)
	assert.Equal(t, "Aigerim Test", notifications[2].MemberName)
}

func TestDeriveNotificationsBothKindsForOneMembership(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	memberships := []models.Membership{
		notificationMembership(1, "Aigerim", now.Add(24*time.Hour), 10, 9),
	}

	notifications := DeriveNotifications(memberships, now)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationExpiring, notifications[0].Type)
	assert.Equal(t, models.NotificationLowClasses, notifications[1].Type)
	assert.Equal(t, notifications[0].MembershipID, notifications[1].MembershipID)
}

func TestDeriveNotificationsOrdering(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	farEnd := now.AddDate(0, 0, 20)

	memberships := []models.Membership{
		notificationMembership(1, "Aigerim", now.Add(60*time.Hour), 10, 0),
		notificationMembership(2, "Bolat", now.Add(12*time.Hour), 10, 0),
		notificationMembership(3, "Chingiz", farEnd, 10, 9),
		notificationMembership(4, "Diana", farEnd, 10, 10),
	}

	notifications := DeriveNotifications(memberships, now)
	require.Len(t, notifications, 4)

	// Expiring alerts first, soonest expiry leading; low-class alerts after,
	// fewest classes leading.
	assert.Equal(t, int64(2), notifications[0].MembershipID)
	assert.Equal(t, int64(1), notifications[1].MembershipID)
	assert.Equal(t, int64(4), notifications[2].MembershipID)
	assert.Equal(t, int64(3), notifications[3].MembershipID)
}

func TestDeriveNotificationsSkipsDetachedRows(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	detached := notificationMembership(1, "Aigerim", now.Add(24*time.Hour), 10, 10)
	detached.Plan = nil

	notifications := DeriveNotifications([]models.Membership{detached}, now)
	assert.Empty(t, notifications)
}

func TestGetNotificationsUsesActiveMemberships(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	planRepo := newFakePlanRepo()
	membershipRepo := newFakeMembershipRepo(memberRepo, planRepo)

	member := memberRepo.put(models.Member{
		MembershipNumber: "GM-260301-0200",
		FirstName:        "Samal",
		LastName:         "Nurlanova",
		IsActive:         true,
	})
	plan := planRepo.put(models.Plan{
		Name:         "Monthly 10",
		DurationDays: 30,
		TotalClasses: 10,
		Price:        15000,
		IsActive:     true,
	})

	// Active and nearly exhausted: produces a low-classes alert.
	membershipRepo.put(models.Membership{
		MemberID:    member.ID,
		PlanID:      plan.ID,
		StartDate:   time.Now().AddDate(0, 0, -5),
		EndDate:     time.Now().AddDate(0, 0, 25),
		ClassesUsed: 9,
		IsActive:    true,
	})
	// Superseded membership in the same state must not alert.
	membershipRepo.put(models.Membership{
		MemberID:    member.ID,
		PlanID:      plan.ID,
		StartDate:   time.Now().AddDate(0, 0, -40),
		EndDate:     time.Now().AddDate(0, 0, -10),
		ClassesUsed: 10,
		IsActive:    false,
	})

	service := NewNotificationService(membershipRepo)
	notifications, err := service.GetNotifications()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationLowClasses, notifications[0].Type)
	assert.Equal(t, "Samal Nurlanova", notifications[0].MemberName)
}
