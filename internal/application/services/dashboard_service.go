package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	apperrors "github.com/sportzone/backend/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// membershipPeriod is how long a membership purchase stays active
const membershipPeriod = 30 * 24 * time.Hour

var profileUpdatedNotice = entities.Notice{
	Title:   "Profile updated",
	Message: "Your profile has been updated successfully.",
}

// DashboardService assembles the signed-in user's overview
type DashboardService struct {
	profiles repositories.ProfileRepository
	bookings *BookingGateway
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(profiles repositories.ProfileRepository, bookings *BookingGateway) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		bookings: bookings,
		now:      time.Now,
	}
}

// Dashboard fetches the profile and booking history concurrently. A failure
// in one section is reported in Errors and leaves the other intact.
func (s *DashboardService) Dashboard(ctx context.Context, identity *entities.Identity) (*entities.Dashboard, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}

	var (
		profile     *entities.UserProfile
		bookings    []*entities.BookingRecord
		profileErr  error
		bookingsErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		profile, profileErr = s.profiles.GetByID(ctx, identity.ID)
		return nil
	})
	g.Go(func() error {
		bookings, bookingsErr = s.bookings.ListForUser(ctx, identity.ID)
		return nil
	})
	_ = g.Wait()

	dashboard := &entities.Dashboard{
		User:     *identity,
		Bookings: []*entities.BookingRecord{},
	}

	var sectionErrors entities.DashboardErrors
	if profileErr != nil {
		log.Error().Err(profileErr).Str("user_id", identity.ID).Msg("failed to load profile")
		sectionErrors.Profile = "Error loading profile"
	} else {
		dashboard.Profile = profile
		dashboard.ProfileForm = entities.NewProfileForm(profile)
	}
	if bookingsErr != nil {
		log.Error().Err(bookingsErr).Str("user_id", identity.ID).Msg("failed to load bookings")
		sectionErrors.Bookings = "Error loading bookings"
	} else if bookings != nil {
		dashboard.Bookings = bookings
	}
	if sectionErrors != (entities.DashboardErrors{}) {
		dashboard.Errors = &sectionErrors
	}

	dashboard.HasBookings = len(dashboard.Bookings) > 0
	dashboard.Membership = MembershipStatusOf(dashboard.Bookings, s.now())
	return dashboard, nil
}

// Profile returns the stored profile and the pre-filled form
func (s *DashboardService) Profile(ctx context.Context, identity *entities.Identity) (*entities.ProfileView, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}
	profile, err := s.profiles.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	return &entities.ProfileView{Profile: profile, Form: entities.NewProfileForm(profile)}, nil
}

// UpdateProfile upserts the caller's profile and returns the stored value
func (s *DashboardService) UpdateProfile(ctx context.Context, identity *entities.Identity, update entities.ProfileUpdate) (*entities.ProfileView, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}

	profile := &entities.UserProfile{
		ID:        identity.ID,
		FullName:  strings.TrimSpace(update.FullName),
		Phone:     strings.TrimSpace(update.Phone),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	stored, err := s.profiles.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = profile
	}

	notice := profileUpdatedNotice
	return &entities.ProfileView{Profile: stored, Form: entities.NewProfileForm(stored), Notice: &notice}, nil
}

// MembershipStatusOf derives the active plan from bookings sorted newest
// first: the latest confirmed membership purchase made within the last
// membership period
func MembershipStatusOf(bookings []*entities.BookingRecord, now time.Time) entities.MembershipStatus {
	for _, b := range bookings {
		if b == nil || !b.IsMembership() || b.BookingStatus != entities.BookingStatusConfirmed {
			continue
		}
		renews := b.CreatedAt.Add(membershipPeriod)
		if !now.Before(renews) {
			return entities.MembershipStatus{}
		}
		since := b.CreatedAt
		return entities.MembershipStatus{
			Active:   true,
			Plan:     b.MembershipPlanName(),
			Since:    &since,
			RenewsOn: &renews,
		}
	}
	return entities.MembershipStatus{}
}
