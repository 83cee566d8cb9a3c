package domain

type ContextKey string

const (
	KeyUserID    ContextKey = "UserID"
	KeyUserEmail ContextKey = "UserEmail"
	KeyUserRole  ContextKey = "UserRole"
	KeyUserOrgID ContextKey = "UserOrgID"
)
