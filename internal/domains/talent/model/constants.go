package model

import "regexp"

const (
	// Media capacity
	MaxPortfolioImages = 7
	MaxVideoSeconds    = 45
	MaxVideoBytes      = 50 << 20

	// New registrations sort after every ranked talent
	RankSentinel = 999

	MinPasswordLength = 6
	MaxPasswordLength = 128

	ResetCodeLength = 6
)

var resetCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Status is the moderation state of a talent
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Category is the closed set of talent categories shown on the site
type Category string

const (
	CategoryModelFemale     Category = "Model - Female"
	CategoryModelMale       Category = "Model - Male"
	CategoryDesigners       Category = "Designers"
	CategoryMakeupHair      Category = "Makeup & Hair"
	CategoryPhotography     Category = "Photography"
	CategoryEventManagement Category = "Event Management"
	CategoryOther           Category = "Other"
)

var categories = []Category{
	CategoryModelFemale,
	CategoryModelMale,
	CategoryDesigners,
	CategoryMakeupHair,
	CategoryPhotography,
	CategoryEventManagement,
	CategoryOther,
}

// Categories returns the category enum in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// categoryValues is the enum as ozzo-validation In() arguments
func categoryValues() []interface{} {
	out := make([]interface{}, len(categories))
	for i, c := range categories {
		out[i] = c
	}
	return out
}
