package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked on sign-out
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email already registered

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // no permission for this action
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin required
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // resource owner required

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // malformed request payload
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // non-numeric or missing id
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad field format
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // value out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // required field missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // resource missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate
	ResourceConflict      = "RESOURCE_CONFLICT"       // state conflict

	// ==================== Farmers (FARMER_) ====================
	FarmerNotFound          = "FARMER_NOT_FOUND"           // farmer profile missing
	FarmerAlreadyRegistered = "FARMER_ALREADY_REGISTERED"  // user already has a farm
	FarmerNotApproved       = "FARMER_NOT_APPROVED"        // application not approved yet
	FarmerApplicationFailed = "FARMER_APPLICATION_FAILED"  // application could not be saved
	FarmerReviewNotPending  = "FARMER_REVIEW_NOT_PENDING"  // application already reviewed

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound     = "PRODUCT_NOT_FOUND"     // product missing
	ProductUnavailable  = "PRODUCT_UNAVAILABLE"   // listed as unavailable
	ProductOutOfStock   = "PRODUCT_OUT_OF_STOCK"  // insufficient stock
	ProductNotOwned     = "PRODUCT_NOT_OWNED"     // product belongs to another farmer

	// ==================== Bookings (BOOKING_) ====================
	BookingNotFound      = "BOOKING_NOT_FOUND"       // booking missing
	BookingDateInvalid   = "BOOKING_DATE_INVALID"    // outside the allowed window
	BookingNotCancellable = "BOOKING_NOT_CANCELLABLE" // wrong status or date for cancel
	BookingNotPending    = "BOOKING_NOT_PENDING"     // confirm/reject needs pending

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // item missing from cart
	CartEmpty        = "CART_EMPTY"          // checkout on empty cart

	// ==================== Orders (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"        // order missing
	OrderInvalidStatus  = "ORDER_INVALID_STATUS"   // unknown status value
	OrderCheckoutFailed = "ORDER_CHECKOUT_FAILED"  // checkout transaction failed

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistItemNotFound = "WISHLIST_ITEM_NOT_FOUND" // wishlist entry missing
	WishlistItemExists   = "WISHLIST_ITEM_EXISTS"    // product already wishlisted

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // non-image content type
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // over size limit
	UploadFailed          = "UPLOAD_FAILED"            // presign or store failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected server error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // database failure
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // misconfiguration
)
