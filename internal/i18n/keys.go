// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAccountSuspended   = "auth.account_suspended"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Validation
	KeyValidationInvalid    = "validation.invalid"
	KeyValidationInvalidCPF = "validation.invalid_cpf"
	KeyValidationInvalidCEP = "validation.invalid_cep"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyProductSlugTaken  = "product.slug_taken"

	// Coupons
	KeyCouponNotFound   = "coupon.not_found"
	KeyCouponNotStarted = "coupon.not_started"
	KeyCouponExpired    = "coupon.expired"
	KeyCouponUsageLimit = "coupon.usage_limit"
	KeyCouponMinOrder   = "coupon.min_order"
	KeyCouponValid      = "coupon.valid"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartEmpty       = "cart.empty"

	// Orders and payments
	KeyOrderCreated     = "order.created"
	KeyOrderNotFound    = "order.not_found"
	KeyPaymentPending   = "payment.pending"
	KeyPaymentConfirmed = "payment.confirmed"
	KeyPaymentFailed    = "payment.failed"

	// Mass pricing
	KeyPricingApplied   = "pricing.applied"
	KeyPricingBelowCost = "pricing.below_cost"

	// Settings and editor
	KeySettingsUpdated = "settings.updated"
	KeyLayoutSaved     = "layout.saved"

	// Generic persistence errors (substring-matched from database errors)
	KeyErrDuplicate    = "db.duplicate"
	KeyErrForeignKey   = "db.foreign_key"
	KeyErrNotFound     = "db.not_found"
	KeyErrPermission   = "db.permission"
	KeyErrUnknown      = "db.unknown"
	KeyConciergeBusy   = "concierge.busy"
	KeyConciergeQuota  = "concierge.quota"
	KeyConciergeFailed = "concierge.failed"
)
