package types

// UserResponse is the allow-listed projection of a user returned by the API.
// The password hash and provider subject ids are never part of it.
type UserResponse struct {
	ID            uint   `json:"id"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	FullName      string `json:"fullName"`
	Email         string `json:"email,omitempty"`
	Provider      string `json:"provider"`
	ContactNumber string `json:"contactNumber,omitempty"`
	EmployeeID    string `json:"employeeId,omitempty"`
	AvatarImage   string `json:"avatarImage,omitempty"`
}
