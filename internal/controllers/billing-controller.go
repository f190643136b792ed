package controllers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/billing"
	"github.com/menulink/menulink-api/internal/services"
	"github.com/menulink/menulink-api/internal/urlutil"
	log "github.com/sirupsen/logrus"
)

// BillingController handles subscription plans, checkout/portal redirects and
// the provider's webhook endpoint.
type BillingController struct {
	billingService services.BillingService
	userService    services.UserService
	provider       billing.Provider
	siteURL        string

	mu        sync.Mutex
	planCache billing.PlanCache
}

// NewBillingController creates a new instance of BillingController
func NewBillingController(billingService services.BillingService, userService services.UserService, provider billing.Provider, siteURL string) *BillingController {
	return &BillingController{
		billingService: billingService,
		userService:    userService,
		provider:       provider,
		siteURL:        siteURL,
		planCache:      billing.NewPlanCache(0),
	}
}

// GetPlans godoc
// @Summary List subscription plans
// @Description List the provider's active recurring plans, served from a short-lived cache
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {array} billing.Plan
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/billing/plans [get]
func (c *BillingController) GetPlans(ctx *gin.Context) {
	c.mu.Lock()
	cache, plans, err := c.planCache.Refresh(c.provider, time.Now())
	c.planCache = cache
	c.mu.Unlock()

	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch plans"})
		return
	}
	ctx.JSON(http.StatusOK, plans)
}

// CreateCheckout godoc
// @Summary Start a subscription checkout
// @Description Create a hosted checkout session for the given plan and return its URL
// @Tags billing
// @Accept json
// @Produce json
// @Param checkout body object{price_id=string} true "Plan to subscribe to"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/billing/checkout [post]
func (c *BillingController) CreateCheckout(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var body struct {
		PriceID string `json:"price_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "price_id is required"})
		return
	}

	user, err := c.userService.GetUserByID(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	baseURL := urlutil.ResolveBaseURL(c.siteURL, ctx.Request)
	url, err := c.provider.CreateCheckoutSession(
		user.Email,
		body.PriceID,
		baseURL+"/billing/success",
		baseURL+"/billing/cancel",
	)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.mu.Lock()
	c.planCache = c.planCache.Invalidate()
	c.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// CreatePortal godoc
// @Summary Open the billing portal
// @Description Create a hosted billing-portal session for the user's customer and return its URL
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/billing/portal [post]
func (c *BillingController) CreatePortal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	customer, err := c.billingService.CustomerForUser(userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No billing customer for user"})
		return
	}

	baseURL := urlutil.ResolveBaseURL(c.siteURL, ctx.Request)
	url, err := c.provider.CreatePortalSession(customer.ID, baseURL+"/account")
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create portal session"})
		return
	}

	c.mu.Lock()
	c.planCache = c.planCache.Invalidate()
	c.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// GetSubscription godoc
// @Summary Get the current subscription
// @Description Return the locally mirrored subscription for the authenticated user
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} models.SubscriptionRecord
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/billing/subscription [get]
func (c *BillingController) GetSubscription(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	sub, err := c.billingService.SubscriptionForUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoSubscription) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No subscription"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// HandleWebhook godoc
// @Summary Billing provider webhook
// @Description Verify the event signature and project it into local billing records. Projection failures are logged but still acknowledged so the provider does not retry forever.
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /api/v1/billing/webhooks [post]
func (c *BillingController) HandleWebhook(ctx *gin.Context) {
	payload, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	sigHeader := ctx.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
		return
	}

	event, err := c.provider.VerifyWebhook(payload, sigHeader)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := c.billingService.Project(event); err != nil {
		// Acknowledge anyway: the event is authentic and retrying the same
		// delivery would hit the same projection error.
		log.WithError(err).WithField("event_type", event.Type).Error("Failed to project billing event")
	}

	c.mu.Lock()
	c.planCache = c.planCache.Invalidate()
	c.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
