package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
)

// expiryWindow is how far ahead the expiring-membership alert looks.
const expiryWindow = 72 * time.Hour

// lowClassThreshold marks memberships running out of classes.
const lowClassThreshold = 1

// --- NotificationService Interface ---
type NotificationService interface {
	GetNotifications() ([]models.Notification, error)
}

// --- notificationService Implementation ---
type notificationService struct {
	membershipRepo repositories.MembershipRepository
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(membershipRepo repositories.MembershipRepository) NotificationService {
	return &notificationService{membershipRepo: membershipRepo}
}

// GetNotifications derives the current alerts from active memberships. Nothing
// is stored; the same state always yields the same alerts.
func (s *notificationService) GetNotifications() ([]models.Notification, error) {
	active := true
	memberships, _, err := s.membershipRepo.GetMemberships(models.MembershipFilters{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to load active memberships: %w", err)
	}
	return DeriveNotifications(memberships, time.Now()), nil
}

// DeriveNotifications computes the alert list for the given memberships at the
// given instant. A membership that is both about to expire and low on classes
// produces one alert of each kind. Expiring alerts come first, soonest expiry
// leading; low-class alerts follow, fewest classes leading.
func DeriveNotifications(memberships []models.Membership, now time.Time) []models.Notification {
	notifications := []models.Notification{}

	var lowClasses []models.Notification
	for i := range memberships {
		ms := &memberships[i]
		if ms.Member == nil || ms.Plan == nil {
			continue
		}
		memberName := ms.Member.FullName()

		// The end day counts in full: a membership ending today is expiring,
		// not expired, until the day rolls over.
		endOfDay := time.Date(ms.EndDate.Year(), ms.EndDate.Month(), ms.EndDate.Day(), 0, 0, 0, 0, ms.EndDate.Location()).AddDate(0, 0, 1)
		expired := !now.Before(endOfDay)

		if !expired && ms.EndDate.Sub(now) <= expiryWindow {
			days := int(math.Ceil(ms.EndDate.Sub(now).Hours() / 24))
			if days < 0 {
				days = 0
			}
			notifications = append(notifications, models.Notification{
				Type:            models.NotificationExpiring,
				Priority:        models.PriorityHigh,
				MemberID:        ms.MemberID,
				MembershipID:    ms.ID,
				MemberName:      memberName,
				PlanName:        ms.Plan.Name,
				EndDate:         ms.EndDate,
				DaysUntilExpiry: &days,
				Message:         fmt.Sprintf("Membership of %s (%s) expires in %d day(s)", memberName, ms.Plan.Name, days),
			})
		}

		if remaining := ms.ClassesRemaining(); !expired && remaining <= lowClassThreshold {
			r := remaining
			lowClasses = append(lowClasses, models.Notification{
				Type:             models.NotificationLowClasses,
				Priority:         models.PriorityMedium,
				MemberID:         ms.MemberID,
				MembershipID:     ms.ID,
				MemberName:       memberName,
				PlanName:         ms.Plan.Name,
				EndDate:          ms.EndDate,
				ClassesRemaining: &r,
				Message:          fmt.Sprintf("%s has %d class(es) remaining on plan %s", memberName, r, ms.Plan.Name),
			})
		}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].EndDate.Before(notifications[j].EndDate)
	})
	sort.SliceStable(lowClasses, func(i, j int) bool {
		return *lowClasses[i].ClassesRemaining < *lowClasses[j].ClassesRemaining
	})

	return append(notifications, lowClasses...)
}
