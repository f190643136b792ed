package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/menulink/menulink-api/internal/models"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoSubscription means no mirrored subscription exists for the user.
var ErrNoSubscription = errors.New("no subscription on record")

// BillingService projects verified provider events into local mirror rows and
// serves reads against them. The mirror is display-only: projection failures
// are swallowed upstream and the provider stays the source of truth.
type BillingService interface {
	// Project applies one verified provider event. Unknown event types are
	// ignored. Errors indicate a failed lookup/write, which callers log and
	// swallow so the provider's delivery is acknowledged regardless.
	Project(event stripe.Event) error
	// CustomerForUser returns the mirrored customer linked to a user
	CustomerForUser(userID uint) (*models.CustomerRecord, error)
	// SubscriptionForUser returns the newest mirrored subscription of the
	// user's customer, or ErrNoSubscription
	SubscriptionForUser(userID uint) (*models.SubscriptionRecord, error)
}

type billingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) BillingService {
	return &billingService{db: db}
}

func (s *billingService) Project(event stripe.Event) error {
	switch string(event.Type) {
	case "customer.created":
		var customer stripe.Customer
		if err := json.Unmarshal(event.Data.Raw, &customer); err != nil {
			return fmt.Errorf("decoding customer payload: %w", err)
		}
		return s.upsertCustomer(&customer)

	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decoding subscription payload: %w", err)
		}
		return s.upsertSubscription(&sub)

	default:
		// Not a projected event type; acknowledged without effect.
		log.WithField("event_type", event.Type).Debug("Ignoring billing event")
		return nil
	}
}

func (s *billingService) upsertCustomer(customer *stripe.Customer) error {
	record := models.CustomerRecord{
		ID:    customer.ID,
		Email: customer.Email,
	}

	// Opportunistic linkage: if a local account shares the email, remember
	// it. Missing linkage is fine, the row still mirrors the provider.
	var user models.User
	if customer.Email != "" {
		if err := s.db.Where("email = ?", customer.Email).First(&user).Error; err == nil {
			record.UserID = &user.ID
		}
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "user_id", "updated_at"}),
	}).Create(&record).Error
}

func (s *billingService) upsertSubscription(sub *stripe.Subscription) error {
	record := models.SubscriptionRecord{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CurrentPeriodEnd:  time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		record.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		record.PriceID = sub.Items.Data[0].Price.ID
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_id", "price_id", "status", "current_period_end", "cancel_at_period_end", "updated_at",
		}),
	}).Create(&record).Error
}

func (s *billingService) CustomerForUser(userID uint) (*models.CustomerRecord, error) {
	var customer models.CustomerRecord
	err := s.db.Where("user_id = ?", userID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *billingService) SubscriptionForUser(userID uint) (*models.SubscriptionRecord, error) {
	customer, err := s.CustomerForUser(userID)
	if err != nil {
		return nil, err
	}

	var sub models.SubscriptionRecord
	err = s.db.Where("customer_id = ?", customer.ID).Order("created_at DESC").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
