package domain

// Principal is the identity attached to a session after an OAuth sign-in.
type Principal struct {
	Provider    string `json:"provider"`
	Subject     string `json:"sub"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func (p Principal) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
