package models

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeNewProspect   UserType = "new_prospect"
	UserTypeActiveStudent UserType = "active_student"
	UserTypeFormerStudent UserType = "former_student"
	UserTypeLead          UserType = "lead"
)

type PaymentStatus string

const (
	PaymentStatusCurrent   PaymentStatus = "current"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusSuspended PaymentStatus = "suspended"
)

type LeadSource string

const (
	LeadSourcePhone     LeadSource = "phone"
	LeadSourceSMS       LeadSource = "sms"
	LeadSourceWhatsApp  LeadSource = "whatsapp"
	LeadSourceFacebook  LeadSource = "facebook"
	LeadSourceInstagram LeadSource = "instagram"
	LeadSourceWalkIn    LeadSource = "walkin"
	LeadSourceWebsite   LeadSource = "website"
)

type QualificationStatus string

const (
	QualificationUnqualified    QualificationStatus = "unqualified"
	QualificationQualified      QualificationStatus = "qualified"
	QualificationIntroScheduled QualificationStatus = "intro_scheduled"
	QualificationIntroCompleted QualificationStatus = "intro_completed"
	QualificationEnrolled       QualificationStatus = "enrolled"
)

// User is one record in the users collection. Student- and lead-specific
// fields are populated according to Type; the phone number is stored
// normalized (digits only).
type User struct {
	ID    uuid.UUID `db:"id"`
	Phone string    `db:"phone"`
	Name  string    `db:"name"`
	Email string    `db:"email"`
	Type  UserType  `db:"type"`

	// Student fields (active_student / former_student)
	Rank               string        `db:"rank"`
	LastAttendanceDate *time.Time    `db:"last_attendance_date"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	EnrollmentDate     *time.Time    `db:"enrollment_date"`
	MembershipType     string        `db:"membership_type"`

	// Lead fields (lead / new_prospect)
	Source              LeadSource          `db:"source"`
	Interest            string              `db:"interest"`
	QualificationStatus QualificationStatus `db:"qualification_status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsStudent reports whether the record carries a student profile.
func (u *User) IsStudent() bool {
	return u.Type == UserTypeActiveStudent || u.Type == UserTypeFormerStudent
}
