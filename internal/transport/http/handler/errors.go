package handler

const (
	errInternalServer = "Internal server error"
	errUnauthorized   = "Unauthorized"

	// auth
	errInvalidEmail      = "Invalid email"
	errAlreadyRegistered = "Email is already registered"
	errSendOTP           = "Failed to send OTP"
	errOTPRequired       = "Email and OTP required"
	errOTPNotFound       = "OTP not found"
	errOTPExpired        = "OTP expired"
	errOTPMismatch       = "Invalid OTP"
	errInvalidSignup     = "Invalid signup data"
	errEmailInUse        = "Email already in use"
	errLoginRequired     = "Email and password required"
	errUserNotFound      = "Invalid credentials: user not found"
	errWrongPassword     = "Invalid credentials: password incorrect"
	errFederatedOnly     = "Sign in with Google, this account has no password"
	errMissingCredential = "Missing Google credential"
	errFederatedDisabled = "Google sign-in is not enabled"
	errFederatedRejected = "Google authentication failed"

	// users
	errInvalidProfile    = "Invalid profile data"
	errPasswordRequired  = "Current and new password required"
	errCurrentPassword   = "Current password is incorrect"
	errNoPasswordToReset = "This account signs in with Google and has no password"
	errEmailRequired     = "Email is required"
	errSendInvite        = "Failed to send invite"

	// projects and tasks
	errInvalidProject   = "Invalid project data"
	errInvalidTask      = "Invalid task data"
	errInvalidStatus    = "Invalid status value"
	errInvalidPriority  = "Invalid priority value"
	errInvalidDateRange = "End date must not be before start date"
	errProjectNotFound  = "Project not found"
	errNotProjectOwner  = "Unauthorized to delete this project"
	errTaskNotFound     = "Task not found"
)

const (
	msgOTPVerified     = "OTP verified"
	msgPasswordUpdated = "Password updated successfully"
	msgProjectDeleted  = "Project deleted successfully"
	msgTaskDeleted     = "Task deleted"
)
