package domain

// UserProfile is the payload sent to the profile-materialization endpoint
// after a provider account has been created.
type UserProfile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
