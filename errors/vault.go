package errors

// Vault root errors. Codes are 100 plus the code the same failure had in
// the token vault contract, so clients can keep a single mapping.
// Unauthorized and invalid amount failures use ErrUnauthorized and ErrAmount.
var (
	// ErrNotInitialized is returned by any operation that requires the
	// vault configuration before it was created.
	ErrNotInitialized = Register(101, "vault not initialized")

	// ErrAlreadyInitialized is returned when the vault is initialized a
	// second time.
	ErrAlreadyInitialized = Register(102, "vault already initialized")

	// ErrInvalidDuration is returned for a non positive lock or vesting
	// duration and for a negative cliff.
	ErrInvalidDuration = Register(105, "invalid duration")

	// ErrLockNotFound is returned when a token lock does not exist.
	ErrLockNotFound = Register(106, "lock not found")

	// ErrLockStillActive is returned when a lock is claimed before its
	// unlock time.
	ErrLockStillActive = Register(107, "lock still active")

	// ErrAlreadyClaimed is returned for a lock that was already released,
	// either by a claim or by an emergency unlock.
	ErrAlreadyClaimed = Register(108, "already claimed")

	// ErrEmergencyNotApproved is returned when an emergency unlock is
	// requested before the approval threshold is reached.
	ErrEmergencyNotApproved = Register(109, "emergency not approved")

	// ErrVestingNotFound is returned when a vesting schedule does not
	// exist.
	ErrVestingNotFound = Register(110, "vesting not found")

	// ErrNothingToClaim is returned when a vesting claim would release
	// nothing.
	ErrNothingToClaim = Register(111, "nothing to claim")

	// ErrAlreadyApproved is returned when an emergency signer approves the
	// same lock twice.
	ErrAlreadyApproved = Register(112, "already approved emergency")
)
