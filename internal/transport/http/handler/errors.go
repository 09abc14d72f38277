package handler

const (
	errInternalServer     = "Internal server error"
	errAllFieldsRequired  = "All fields are required"
	errInvalidEmail       = "Invalid email address"
	errNameLength         = "Name must be between 2 and 16 characters"
	errDuplicateEmail     = "User already exists with this email"
	errInvalidCredentials = "Invalid email or password"
	errEmailPasswordReq   = "Email and password are required"
	errUserNotFound       = "User not found"
	errPasswordsRequired  = "Current password and new password are required"
	errCurrentPassword    = "Current password is incorrect"

	errTaskNotFound    = "Task not found"
	errTitleRequired   = "Title is required"
	errInvalidStatus   = "Invalid status value"
	errInvalidPriority = "Invalid priority value"
)

// internalMessage hides error detail from callers outside local/staging.
func internalMessage(expose bool, err error) string {
	if expose {
		return err.Error()
	}
	return errInternalServer
}
