package payload

type UserResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}

type CurrentUserResponse struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"externalId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}
