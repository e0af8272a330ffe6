package models

// BadgeVariant is the visual variant a client uses when rendering a status
type BadgeVariant string

// Badge variant constants
const (
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
	BadgeInfo    BadgeVariant = "info"
	BadgeNeutral BadgeVariant = "neutral"
)

// Badge returns the variant for a customer status
func (s CustomerStatus) Badge() BadgeVariant {
	switch s {
	case CustomerStatusActive:
		return BadgeSuccess
	case CustomerStatusInactive:
		return BadgeNeutral
	default:
		return BadgeNeutral
	}
}

// Badge returns the variant for a bill status
func (s BillStatus) Badge() BadgeVariant {
	switch s {
	case BillStatusPaid:
		return BadgeSuccess
	case BillStatusDue:
		return BadgeWarning
	case BillStatusOverdue:
		return BadgeDanger
	default:
		return BadgeNeutral
	}
}

// Badge returns the variant for a payment status
func (s PaymentStatus) Badge() BadgeVariant {
	switch s {
	case PaymentStatusPosted:
		return BadgeSuccess
	case PaymentStatusPending:
		return BadgeInfo
	case PaymentStatusReturned:
		return BadgeDanger
	default:
		return BadgeNeutral
	}
}

// Badge returns the variant for a case status
func (s CaseStatus) Badge() BadgeVariant {
	switch s {
	case CaseStatusOpen:
		return BadgeWarning
	case CaseStatusInProgress:
		return BadgeInfo
	case CaseStatusResolved, CaseStatusClosed:
		return BadgeSuccess
	default:
		return BadgeNeutral
	}
}

// Badge returns the variant for a program status
func (s ProgramStatus) Badge() BadgeVariant {
	switch s {
	case ProgramStatusActive:
		return BadgeSuccess
	case ProgramStatusPilot:
		return BadgeInfo
	case ProgramStatusClosed:
		return BadgeNeutral
	default:
		return BadgeNeutral
	}
}

// Badge returns the variant for an eligibility status
func (s EligibilityStatus) Badge() BadgeVariant {
	switch s {
	case EligibilityEligible:
		return BadgeInfo
	case EligibilityEnrolled:
		return BadgeSuccess
	case EligibilityDeclined:
		return BadgeNeutral
	default:
		return BadgeNeutral
	}
}
