package models

type UserRole string
type ApplicationStatus string
type NotificationType string
type ActivityAction string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	NotificationTypeApplication       NotificationType = "application"
	NotificationTypeApplicationStatus NotificationType = "application_status"
	NotificationTypeJobPost           NotificationType = "job_post"
	NotificationTypeMessage           NotificationType = "message"
	NotificationTypeGeneral           NotificationType = "general"

	ActivityLogin               ActivityAction = "login"
	ActivityLogout              ActivityAction = "logout"
	ActivityRegister            ActivityAction = "register"
	ActivityProfileUpdate       ActivityAction = "profile_update"
	ActivityCVUpload            ActivityAction = "cv_upload"
	ActivityJobApplication      ActivityAction = "job_application"
	ActivityProfileView         ActivityAction = "profile_view"
	ActivityPasswordChange      ActivityAction = "password_change"
	ActivityWithdrawApplication ActivityAction = "withdraw_application"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// IsReviewOutcome - статусы, которые может выставить администратор.
func (s ApplicationStatus) IsReviewOutcome() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeApplication, NotificationTypeApplicationStatus, NotificationTypeJobPost,
		NotificationTypeMessage, NotificationTypeGeneral:
		return true
	}
	return false
}

func (a ActivityAction) IsValid() bool {
	switch a {
	case ActivityLogin, ActivityLogout, ActivityRegister, ActivityProfileUpdate, ActivityCVUpload,
		ActivityJobApplication, ActivityProfileView, ActivityPasswordChange, ActivityWithdrawApplication:
		return true
	}
	return false
}
