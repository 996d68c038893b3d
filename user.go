package crewdesk

// Role determines which surfaces of the remote API a user may exercise.
// Roles are assigned server-side; a holder never self-assigns one except
// through an authorized admin update.
type Role string

const (
	// RoleUser users get self-service profile access only.
	RoleUser Role = "USER"
	// RoleEmployee users additionally get a read-only user directory.
	RoleEmployee Role = "EMPLOYEE"
	// RoleAdmin users get the full user directory with create and edit.
	RoleAdmin Role = "ADMIN"
)

// User represents an authenticated identity record as issued by the API
// server. Timestamps are ISO-8601 strings, exactly as the server sends
// them.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Fullname  string `json:"fullname"`
	Gender    string `json:"gender"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Pagination describes the position of one page within a paged listing.
type Pagination struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// UserList is one page of the user directory.
type UserList struct {
	Items      []User     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
